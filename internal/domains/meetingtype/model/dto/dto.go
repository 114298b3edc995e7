package dto

import (
	"cadence/internal/domains/meetingtype/model"
)

type MeetingTypeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsPhysical bool   `json:"is_physical"`
	Icon       string `json:"icon,omitempty"`
	Color      string `json:"color,omitempty"`
}

func (r *MeetingTypeResponse) FromModel(mod model.MeetingType) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.IsPhysical = mod.IsPhysical
	r.Icon = mod.Icon
	r.Color = mod.Color
}

type GetMeetingTypesResponse struct {
	MeetingTypes []MeetingTypeResponse `json:"meeting_types"`
}

func (r *GetMeetingTypesResponse) FromModels(models []model.MeetingType) {
	r.MeetingTypes = make([]MeetingTypeResponse, len(models))
	for i, mod := range models {
		r.MeetingTypes[i].FromModel(mod)
	}
}
