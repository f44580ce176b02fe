package services

import (
	"errors"

	"github.com/VendleServices/vendle-backend/internal/email"
	"github.com/VendleServices/vendle-backend/internal/logger"
	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/services/dto"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"gorm.io/gorm"
)

type InvitationService struct {
	invitationRepo *repositories.InvitationRepository
	claimRepo      *repositories.ClaimRepository
	contractorRepo *repositories.ContractorRepository
	projectRepo    *repositories.ProjectRepository
	userRepo       *repositories.UserRepository
	notifications  *NotificationService
	emailProvider  email.Provider
}

func NewInvitationService(
	invitationRepo *repositories.InvitationRepository,
	claimRepo *repositories.ClaimRepository,
	contractorRepo *repositories.ContractorRepository,
	projectRepo *repositories.ProjectRepository,
	userRepo *repositories.UserRepository,
	notifications *NotificationService,
	emailProvider email.Provider,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		claimRepo:      claimRepo,
		contractorRepo: contractorRepo,
		projectRepo:    projectRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		emailProvider:  emailProvider,
	}
}

// Invite asks a contractor to review and bid on the owner's claim. One
// invitation per claim/contractor pair.
func (s *InvitationService) Invite(db *gorm.DB, claimID, ownerID string, req *dto.InviteContractorRequest) (*dto.InvitationResponse, error) {
	claim, err := s.claimRepo.FindByID(db, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if claim.OwnerID != ownerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	profile, err := s.contractorRepo.FindByUserID(db, req.ContractorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.invitationRepo.FindByClaimAndContractor(db, claimID, req.ContractorID); err == nil {
		return nil, apperrors.ErrConflict(nil, "invitation", "Contractor is already invited to this claim")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	inv := &models.ClaimInvitation{
		ClaimID:      claimID,
		ContractorID: req.ContractorID,
		InviterID:    &ownerID,
		Status:       models.InvitationStatusPending,
	}
	if err := s.invitationRepo.Create(db, inv); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifications.NotifyInvitation(db, req.ContractorID, claimID, inv.ID)
	s.sendInvitationEmail(db, profile, claim)

	resp := toInvitationResponse(inv)
	return &resp, nil
}

// AcceptPrecondition is the pure gate check for accepting an invitation:
// the NDA must be signed and the invitation must still be pending.
func AcceptPrecondition(status models.InvitationStatus, ndaSigned bool) error {
	if !ndaSigned {
		return apperrors.ErrNDARequired
	}
	if status.Terminal() {
		return apperrors.ErrInvitationClosed
	}
	return nil
}

// Accept moves the invitation to accepted and adds the contractor to the
// claim's project in one transaction.
func (s *InvitationService) Accept(db *gorm.DB, invitationID, contractorID string) (*dto.InvitationResponse, error) {
	inv, err := s.findOwnInvitation(db, invitationID, contractorID)
	if err != nil {
		return nil, err
	}

	profile, err := s.contractorRepo.FindByUserID(db, contractorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNDARequired
		}
		return nil, apperrors.InternalError(err)
	}

	if err := AcceptPrecondition(inv.Status, profile.NDASigned); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.invitationRepo.Transition(tx, invitationID, models.InvitationStatusAccepted)
		if err != nil {
			return err
		}
		if !ok {
			// Lost a race against a concurrent transition.
			return apperrors.ErrInvitationClosed
		}
		return s.projectRepo.Create(tx, &models.ProjectParticipant{
			ClaimID:      inv.ClaimID,
			ContractorID: contractorID,
		})
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	if inv.InviterID != nil {
		s.notifications.NotifyInvitationAnswered(db, *inv.InviterID, inv.ClaimID, true)
	}

	inv.Status = models.InvitationStatusAccepted
	resp := toInvitationResponse(inv)
	return &resp, nil
}

// Decline marks the invitation declined. Declining needs no NDA.
func (s *InvitationService) Decline(db *gorm.DB, invitationID, contractorID string) (*dto.InvitationResponse, error) {
	inv, err := s.findOwnInvitation(db, invitationID, contractorID)
	if err != nil {
		return nil, err
	}
	if inv.Status.Terminal() {
		return nil, apperrors.ErrInvitationClosed
	}

	ok, err := s.invitationRepo.Transition(db, invitationID, models.InvitationStatusDeclined)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		return nil, apperrors.ErrInvitationClosed
	}

	if inv.InviterID != nil {
		s.notifications.NotifyInvitationAnswered(db, *inv.InviterID, inv.ClaimID, false)
	}

	inv.Status = models.InvitationStatusDeclined
	resp := toInvitationResponse(inv)
	return &resp, nil
}

func (s *InvitationService) ListForContractor(db *gorm.DB, contractorID string) (*dto.InvitationListResponse, error) {
	invitations, err := s.invitationRepo.ListByContractor(db, contractorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.InvitationListResponse{Total: len(invitations)}
	for i := range invitations {
		resp.Invitations = append(resp.Invitations, toInvitationResponse(&invitations[i]))
	}
	return resp, nil
}

func (s *InvitationService) ListForClaim(db *gorm.DB, claimID, ownerID string) (*dto.InvitationListResponse, error) {
	claim, err := s.claimRepo.FindByID(db, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if claim.OwnerID != ownerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	invitations, err := s.invitationRepo.ListByClaim(db, claimID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.InvitationListResponse{Total: len(invitations)}
	for i := range invitations {
		resp.Invitations = append(resp.Invitations, toInvitationResponse(&invitations[i]))
	}
	return resp, nil
}

func (s *InvitationService) findOwnInvitation(db *gorm.DB, invitationID, contractorID string) (*models.ClaimInvitation, error) {
	inv, err := s.invitationRepo.FindByID(db, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if inv.ContractorID != contractorID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return inv, nil
}

func (s *InvitationService) sendInvitationEmail(db *gorm.DB, profile *models.ContractorProfile, claim *models.Claim) {
	if s.emailProvider == nil {
		return
	}
	user, err := s.userRepo.FindByID(db, profile.UserID)
	if err != nil {
		return
	}

	go func() {
		err := s.emailProvider.SendTemplate(
			[]string{user.Email},
			"You have a new project invitation",
			email.TemplateInvitation,
			email.TemplateData{
				"ContractorName": user.FirstName,
				"ProjectType":    claim.ProjectType,
				"City":           claim.City,
				"State":          claim.State,
			},
		)
		if err != nil {
			logger.Warn("failed to send invitation email", "user_id", user.ID, "error", err.Error())
		}
	}()
}

func toInvitationResponse(inv *models.ClaimInvitation) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:           inv.ID,
		ClaimID:      inv.ClaimID,
		ContractorID: inv.ContractorID,
		Status:       string(inv.Status),
		CreatedAt:    inv.CreatedAt,
	}
}
