package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/VendleServices/vendle-backend/internal/intake"
	"github.com/VendleServices/vendle-backend/internal/logger"
	"github.com/VendleServices/vendle-backend/internal/models"
	"github.com/VendleServices/vendle-backend/internal/repositories"
	"github.com/VendleServices/vendle-backend/internal/services/dto"
	"github.com/VendleServices/vendle-backend/internal/storage"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ClaimService struct {
	claimRepo      *repositories.ClaimRepository
	auctionRepo    *repositories.AuctionRepository
	invitationRepo *repositories.InvitationRepository
	contractorRepo *repositories.ContractorRepository
	storage        storage.Storage

	auctionDuration time.Duration
}

func NewClaimService(
	claimRepo *repositories.ClaimRepository,
	auctionRepo *repositories.AuctionRepository,
	invitationRepo *repositories.InvitationRepository,
	contractorRepo *repositories.ContractorRepository,
	store storage.Storage,
	auctionDuration time.Duration,
) *ClaimService {
	return &ClaimService{
		claimRepo:       claimRepo,
		auctionRepo:     auctionRepo,
		invitationRepo:  invitationRepo,
		contractorRepo:  contractorRepo,
		storage:         store,
		auctionDuration: auctionDuration,
	}
}

// Creator returns the persistence callback for the intake pipeline, bound to
// the given db handle.
func (s *ClaimService) Creator(db *gorm.DB) intake.CreateFunc {
	return func(ctx context.Context, input intake.ClaimInput) (string, error) {
		return s.createFromIntake(ctx, db, input)
	}
}

func (s *ClaimService) createFromIntake(_ context.Context, db *gorm.DB, input intake.ClaimInput) (string, error) {
	damageJSON, err := json.Marshal(input.Draft.DamageTypes)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	claim := &models.Claim{
		OwnerID:             input.OwnerID,
		ProjectType:         input.Draft.ProjectType,
		DesignPlan:          input.Draft.DesignPlan,
		Description:         input.Draft.Description,
		Street:              input.Draft.Street,
		City:                input.Draft.City,
		State:               input.Draft.State,
		Zip:                 input.Draft.Zip,
		DamageTypes:         datatypes.JSON(damageJSON),
		UtilitiesFunctional: input.Draft.UtilitiesFunctional,
		DumpsterOnSite:      input.Draft.DumpsterOnSite,
		Occupied:            input.Draft.Occupied,
		Phase1Start:         input.Draft.Phase1Start,
		Phase1End:           input.Draft.Phase1End,
		Phase2Start:         input.Draft.Phase2Start,
		Phase2End:           input.Draft.Phase2End,
		TotalJobValue:       input.Draft.TotalJobValue,
		OverheadProfit:      input.Draft.OverheadProfit,
		Materials:           input.Draft.Materials,
		SalesTax:            input.Draft.SalesTax,
		Depreciation:        input.Draft.Depreciation,
		CostBasis:           input.Draft.CostBasis,
		FundingSource:       input.Draft.FundingSource,
		Status:              models.ClaimStatusSubmitted,
	}

	for _, img := range input.ImagePaths {
		claim.Images = append(claim.Images, models.ClaimImage{
			Path:         img.Path,
			OriginalName: img.OriginalName,
			Size:         img.Size,
		})
	}
	for _, pdf := range input.PDFPaths {
		claim.PDFs = append(claim.PDFs, models.ClaimPDF{
			Path:         pdf.Path,
			OriginalName: pdf.OriginalName,
			Size:         pdf.Size,
		})
	}

	if err := s.claimRepo.Create(db, claim); err != nil {
		return "", apperrors.InternalError(err)
	}
	return claim.ID, nil
}

// GetClaim applies the NDA visibility gate: the owner and admins always see
// the full claim, contractors see a redacted view until their NDA is signed.
func (s *ClaimService) GetClaim(ctx context.Context, db *gorm.DB, claimID, viewerID string, role models.UserRole) (*dto.ClaimResponse, error) {
	claim, err := s.claimRepo.FindByID(db, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	redacted, err := s.viewerRedacted(db, claim, viewerID, role)
	if err != nil {
		return nil, err
	}

	resp := s.toClaimResponse(ctx, claim, redacted)
	return &resp, nil
}

// viewerRedacted decides whether the viewer gets the redacted view. Owners
// and admins see everything; a contractor needs an invitation to the claim
// and a signed NDA for the full view.
func (s *ClaimService) viewerRedacted(db *gorm.DB, claim *models.Claim, viewerID string, role models.UserRole) (bool, error) {
	if claim.OwnerID == viewerID || role == models.UserRoleAdmin {
		return false, nil
	}
	if role != models.UserRoleContractor {
		return false, apperrors.ErrInsufficientPermissions
	}

	if _, err := s.invitationRepo.FindByClaimAndContractor(db, claim.ID, viewerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrNotFound(err)
		}
		return false, apperrors.InternalError(err)
	}

	profile, err := s.contractorRepo.FindByUserID(db, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, apperrors.InternalError(err)
	}
	return !profile.NDASigned, nil
}

func (s *ClaimService) ListOwnClaims(ctx context.Context, db *gorm.DB, ownerID string) (*dto.ClaimListResponse, error) {
	claims, err := s.claimRepo.ListByOwner(db, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ClaimListResponse{Total: len(claims)}
	for i := range claims {
		resp.Claims = append(resp.Claims, s.toClaimResponse(ctx, &claims[i], false))
	}
	return resp, nil
}

// DeleteClaim removes the claim, its files and its auction. Only the owner
// may delete, and only once the auction (if any) has closed.
func (s *ClaimService) DeleteClaim(ctx context.Context, db *gorm.DB, claimID, ownerID string) error {
	claim, err := s.claimRepo.FindByID(db, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if claim.OwnerID != ownerID {
		return apperrors.ErrInsufficientPermissions
	}

	auction, err := s.auctionRepo.FindByClaimID(db, claimID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.InternalError(err)
	}
	if auction != nil && auction.Status != models.AuctionStatusClosed {
		return apperrors.ErrAuctionStillOpen
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if auction != nil {
			if err := s.auctionRepo.Delete(tx, auction.ID); err != nil {
				return err
			}
		}
		return s.claimRepo.Delete(tx, claimID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Storage cleanup is best-effort; orphaned objects are harmless.
	for _, img := range claim.Images {
		if err := s.storage.Delete(ctx, img.Path); err != nil {
			logger.Warn("failed to delete claim image", "path", img.Path, "error", err.Error())
		}
	}
	for _, pdf := range claim.PDFs {
		if err := s.storage.Delete(ctx, pdf.Path); err != nil {
			logger.Warn("failed to delete claim estimate", "path", pdf.Path, "error", err.Error())
		}
	}
	return nil
}

// LaunchAuction opens the reverse auction for a submitted claim. One auction
// per claim; relaunching is a conflict.
func (s *ClaimService) LaunchAuction(db *gorm.DB, claimID, ownerID string, req *dto.LaunchAuctionRequest) (*dto.AuctionResponse, error) {
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
	if claim.Status != models.ClaimStatusSubmitted {
		return nil, apperrors.ErrInvalidStatus("claim", "Only a submitted claim can be launched")
	}

	if _, err := s.auctionRepo.FindByClaimID(db, claimID); err == nil {
		return nil, apperrors.ErrConflict(nil, "auction", "Claim already has an auction")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	duration := s.auctionDuration
	if req != nil && req.DurationHours > 0 {
		duration = time.Duration(req.DurationHours) * time.Hour
	}

	auction := &models.Auction{
		ClaimID:     claimID,
		OwnerID:     ownerID,
		Status:      models.AuctionStatusOpen,
		StartingBid: claim.TotalJobValue,
		EndsAt:      time.Now().Add(duration),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.auctionRepo.Create(tx, auction); err != nil {
			return err
		}
		return s.claimRepo.UpdateStatus(tx, claimID, models.ClaimStatusLaunched)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toAuctionResponse(auction)
	return &resp, nil
}

func (s *ClaimService) toClaimResponse(ctx context.Context, claim *models.Claim, redacted bool) dto.ClaimResponse {
	resp := dto.ClaimResponse{
		ID:          claim.ID,
		OwnerID:     claim.OwnerID,
		Status:      string(claim.Status),
		ProjectType: claim.ProjectType,
		City:        claim.City,
		State:       claim.State,
		Redacted:    redacted,
		CreatedAt:   claim.CreatedAt,
	}
	if redacted {
		return resp
	}

	var damageTypes []string
	if len(claim.DamageTypes) > 0 {
		_ = json.Unmarshal(claim.DamageTypes, &damageTypes)
	}

	resp.Street = claim.Street
	resp.Zip = claim.Zip
	resp.DesignPlan = claim.DesignPlan
	resp.Description = claim.Description
	resp.DamageTypes = damageTypes
	resp.UtilitiesFunctional = &claim.UtilitiesFunctional
	resp.DumpsterOnSite = &claim.DumpsterOnSite
	resp.Occupied = &claim.Occupied
	resp.Phase1Start = claim.Phase1Start
	resp.Phase1End = claim.Phase1End
	resp.Phase2Start = claim.Phase2Start
	resp.Phase2End = claim.Phase2End
	resp.TotalJobValue = &claim.TotalJobValue
	resp.OverheadProfit = &claim.OverheadProfit
	resp.Materials = &claim.Materials
	resp.SalesTax = &claim.SalesTax
	resp.Depreciation = &claim.Depreciation
	resp.CostBasis = string(claim.CostBasis)
	resp.FundingSource = string(claim.FundingSource)

	for _, img := range claim.Images {
		resp.Images = append(resp.Images, s.toFileResponse(ctx, img.ID, img.Path, img.OriginalName, img.Size))
	}
	for _, pdf := range claim.PDFs {
		resp.PDFs = append(resp.PDFs, s.toFileResponse(ctx, pdf.ID, pdf.Path, pdf.OriginalName, pdf.Size))
	}
	return resp
}

func (s *ClaimService) toFileResponse(ctx context.Context, id, path, name string, size int64) dto.ClaimFileResponse {
	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		url = ""
	}
	return dto.ClaimFileResponse{
		ID:           id,
		Path:         path,
		URL:          url,
		OriginalName: name,
		Size:         size,
	}
}
