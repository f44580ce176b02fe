package workers

import (
	"time"

	"github.com/VendleServices/vendle-backend/internal/logger"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/services"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// AuctionWorker sweeps expired auctions on a schedule. Closing via a periodic
// sweep keeps the state machine in one place; reads treat an open auction
// past its window as inactive regardless.
type AuctionWorker struct {
	db            *gorm.DB
	auctionRepo   *repositories.AuctionRepository
	notifications *services.NotificationService

	scheduler gocron.Scheduler
	interval  time.Duration
}

func NewAuctionWorker(
	db *gorm.DB,
	auctionRepo *repositories.AuctionRepository,
	notifications *services.NotificationService,
	interval time.Duration,
) *AuctionWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AuctionWorker{
		db:            db,
		auctionRepo:   auctionRepo,
		notifications: notifications,
		interval:      interval,
	}
}

// Start schedules the sweep and begins running it.
func (w *AuctionWorker) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.Sweep),
	)
	if err != nil {
		return err
	}

	w.scheduler = sched
	sched.Start()
	return nil
}

// Stop shuts the scheduler down.
func (w *AuctionWorker) Stop() {
	if w.scheduler != nil {
		_ = w.scheduler.Shutdown()
	}
}

// Sweep closes every open auction whose window has passed and notifies the
// owners.
func (w *AuctionWorker) Sweep() {
	closed, err := w.auctionRepo.CloseExpired(w.db, time.Now())
	logger.WorkerLog("auction", "close_expired", err)
	if err != nil {
		return
	}

	for _, auction := range closed {
		w.notifications.NotifyAuctionClosed(w.db, auction.OwnerID, auction.ClaimID, auction.ID, auction.BidCount)
	}

	if len(closed) > 0 {
		logger.Info("closed expired auctions", "count", len(closed))
	}
}
