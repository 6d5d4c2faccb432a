package attendance

import "time"

// ========================================
// DAILY STATUS DTOs
// ========================================

type DailyStatusResponse struct {
	StaffID string `json:"staff_id"`
	Date    string `json:"date"`
	Type    string `json:"type"`

	WorkMinutes   *int `json:"work_minutes,omitempty"`
	IsInProgress  bool `json:"is_in_progress"`
	IsHolidayWork bool `json:"is_holiday_work"`

	ClockInTime  *string `json:"clock_in_time,omitempty"`
	ClockOutTime *string `json:"clock_out_time,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`

	InvalidPunch  bool    `json:"invalid_punch,omitempty"`
	InvalidReason *string `json:"invalid_reason,omitempty"`

	LeaveType   *string `json:"leave_type,omitempty"`
	LeaveReason *string `json:"leave_reason,omitempty"`
}

func ToStatusResponse(s DailyStatus) DailyStatusResponse {
	resp := DailyStatusResponse{
		StaffID:       s.StaffID,
		Date:          s.Date.Format("2006-01-02"),
		Type:          string(s.Type),
		WorkMinutes:   s.WorkMinutes,
		IsInProgress:  s.IsInProgress,
		IsHolidayWork: s.IsHolidayWork,
		InvalidPunch:  s.InvalidPunch,
		InvalidReason: s.InvalidReason,
		LeaveType:     s.LeaveType,
		LeaveReason:   s.LeaveReason,
	}
	if s.Punch != nil {
		in := s.Punch.ClockInTime.Format(time.RFC3339)
		resp.ClockInTime = &in
		if s.Punch.ClockOutTime != nil {
			out := s.Punch.ClockOutTime.Format(time.RFC3339)
			resp.ClockOutTime = &out
		}
		breakMinutes := s.Punch.BreakMinutes
		resp.BreakMinutes = &breakMinutes
	}
	return resp
}

func ToStatusResponses(statuses []DailyStatus) []DailyStatusResponse {
	out := make([]DailyStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, ToStatusResponse(s))
	}
	return out
}
