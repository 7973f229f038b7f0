package response

import (
	"inventory-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AvailabilityResponse struct {
	TargetKind string    `json:"targetKind"`
	TargetID   uuid.UUID `json:"targetId"`
	TotalStock int       `json:"totalStock"`
	Held       int       `json:"held"`
	Available  int       `json:"available"`
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	var resp AvailabilityResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

type UnavailableItemResponse struct {
	TargetKind string    `json:"targetKind"`
	TargetID   uuid.UUID `json:"targetId"`
	Requested  int       `json:"requested"`
	Available  int       `json:"available"`
}

type AvailabilityReportResponse struct {
	Available        bool                      `json:"available"`
	UnavailableItems []UnavailableItemResponse `json:"unavailableItems"`
}

func FromAvailabilityReport(r *queries.AvailabilityReport) (*AvailabilityReportResponse, error) {
	var resp AvailabilityReportResponse
	if err := copier.Copy(&resp, r); err != nil {
		return nil, err
	}
	if resp.UnavailableItems == nil {
		resp.UnavailableItems = []UnavailableItemResponse{}
	}
	return &resp, nil
}
