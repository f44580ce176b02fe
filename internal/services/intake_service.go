package services

import (
	"context"

	"github.com/VendleServices/vendle-backend/internal/intake"
	"github.com/VendleServices/vendle-backend/internal/services/dto"
	"github.com/VendleServices/vendle-backend/pkg/apperrors"

	"gorm.io/gorm"
)

// IntakeService drives the claim-filing wizard: one in-memory session per
// homeowner, file staging, and the final submission pipeline.
type IntakeService struct {
	sessions *intake.SessionStore
	pipeline *intake.Pipeline
	claims   *ClaimService
}

func NewIntakeService(sessions *intake.SessionStore, pipeline *intake.Pipeline, claims *ClaimService) *IntakeService {
	return &IntakeService{
		sessions: sessions,
		pipeline: pipeline,
		claims:   claims,
	}
}

// Start returns the homeowner's wizard state, creating a fresh flow when none
// is in progress.
func (s *IntakeService) Start(ownerID string) *dto.WizardStateResponse {
	w, _ := s.sessions.Start(ownerID)
	return s.state(w)
}

// Get returns the current wizard state.
func (s *IntakeService) Get(ownerID string) (*dto.WizardStateResponse, error) {
	w := s.sessions.Get(ownerID)
	if w == nil {
		return nil, apperrors.ErrNotFound(nil).WithDetails("No intake in progress")
	}
	return s.state(w), nil
}

// Cancel discards the homeowner's in-progress flow.
func (s *IntakeService) Cancel(ownerID string) {
	s.sessions.Remove(ownerID)
}

// ApplyStep merges the payload into the draft and reports the new state.
func (s *IntakeService) ApplyStep(ownerID string, payload *intake.StepPayload) (*dto.WizardStateResponse, error) {
	w := s.sessions.Get(ownerID)
	if w == nil {
		return nil, apperrors.ErrNotFound(nil).WithDetails("No intake in progress")
	}
	w.ApplyStep(payload)
	return s.state(w), nil
}

// Advance moves forward one step. At the final step it runs the submission
// pipeline instead and, on success, ends the session.
func (s *IntakeService) Advance(ctx context.Context, db *gorm.DB, ownerID string) (*dto.WizardStateResponse, *dto.CreateClaimResponse, error) {
	w := s.sessions.Get(ownerID)
	if w == nil {
		return nil, nil, apperrors.ErrNotFound(nil).WithDetails("No intake in progress")
	}

	done, err := w.Advance()
	if err != nil {
		return nil, nil, err
	}
	if !done {
		return s.state(w), nil, nil
	}

	claimID, err := s.pipeline.Submit(ctx, w, s.claims.Creator(db))
	if err != nil {
		return nil, nil, err
	}

	s.sessions.Remove(ownerID)
	return nil, &dto.CreateClaimResponse{ClaimID: claimID, Status: "submitted"}, nil
}

// Retreat moves back one step.
func (s *IntakeService) Retreat(ownerID string) (*dto.WizardStateResponse, error) {
	w := s.sessions.Get(ownerID)
	if w == nil {
		return nil, apperrors.ErrNotFound(nil).WithDetails("No intake in progress")
	}
	if err := w.Retreat(); err != nil {
		return nil, err
	}
	return s.state(w), nil
}

// StageImage stages a damage photo on the current flow.
func (s *IntakeService) StageImage(ownerID string, file intake.StagedFile) (*dto.WizardStateResponse, error) {
	w := s.sessions.Get(ownerID)
	if w == nil {
		return nil, apperrors.ErrNotFound(nil).WithDetails("No intake in progress")
	}
	w.Attachments().StageImage(file)
	return s.state(w), nil
}

// UnstageImage removes a staged photo by index.
func (s *IntakeService) UnstageImage(ownerID string, index int) (*dto.WizardStateResponse, error) {
	w := s.sessions.Get(ownerID)
	if w == nil {
		return nil, apperrors.ErrNotFound(nil).WithDetails("No intake in progress")
	}
	if err := w.Attachments().UnstageImage(index); err != nil {
		return nil, err
	}
	return s.state(w), nil
}

// StagePDF stages the insurance estimate, replacing any previous one.
func (s *IntakeService) StagePDF(ownerID string, file intake.StagedFile) (*dto.WizardStateResponse, error) {
	w := s.sessions.Get(ownerID)
	if w == nil {
		return nil, apperrors.ErrNotFound(nil).WithDetails("No intake in progress")
	}
	if err := w.Attachments().StagePDF(file); err != nil {
		return nil, err
	}
	return s.state(w), nil
}

// UnstagePDF clears the estimate slot.
func (s *IntakeService) UnstagePDF(ownerID string) (*dto.WizardStateResponse, error) {
	w := s.sessions.Get(ownerID)
	if w == nil {
		return nil, apperrors.ErrNotFound(nil).WithDetails("No intake in progress")
	}
	w.Attachments().UnstagePDF()
	return s.state(w), nil
}

func (s *IntakeService) state(w *intake.Wizard) *dto.WizardStateResponse {
	step := w.Step()
	resp := &dto.WizardStateResponse{
		Step:       step,
		StepName:   intake.StepName(step),
		TotalSteps: intake.TotalSteps,
		StepValid:  w.IsStepValid(step),
	}

	for i, img := range w.Attachments().Images() {
		resp.Images = append(resp.Images, dto.StagedFileResponse{
			Index:       i,
			Name:        img.Name,
			ContentType: img.ContentType,
			Size:        img.Size,
		})
	}
	if pdf := w.Attachments().PDF(); pdf != nil {
		resp.PDF = &dto.StagedFileResponse{
			Name:        pdf.Name,
			ContentType: pdf.ContentType,
			Size:        pdf.Size,
		}
	}
	return resp
}
