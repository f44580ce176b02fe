package dto

// StagedFileResponse describes one staged (not yet uploaded) attachment.
type StagedFileResponse struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// WizardStateResponse is the current intake flow state returned after every
// wizard operation.
type WizardStateResponse struct {
	Step       int    `json:"step"`
	StepName   string `json:"step_name"`
	TotalSteps int    `json:"total_steps"`
	StepValid  bool   `json:"step_valid"`

	Images []StagedFileResponse `json:"images"`
	PDF    *StagedFileResponse  `json:"pdf,omitempty"`
}
