package windmill

import (
	"context"

	"github.com/famvault/famvault/models"
)

const (
	scriptGetTimelineEvents   = "f/chatbot/get_timeline_events"
	scriptManageTimelineEvent = "f/chatbot/manage_timeline_event"
)

// TimelineFilter narrows a timeline query.
type TimelineFilter struct {
	TenantID string `json:"tenant_id,omitempty"`
	MemberID string `json:"member_id,omitempty"`
	Kind     string `json:"kind,omitempty"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// GetTimelineEvents returns timeline entries matching the filter.
func (c *Client) GetTimelineEvents(ctx context.Context, filter TimelineFilter) (*models.TimelineResult, error) {
	var out models.TimelineResult
	if err := c.runScript(ctx, scriptGetTimelineEvents, filter, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TimelineAction is the mutation verb for ManageTimelineEvent.
type TimelineAction string

const (
	TimelineCreate TimelineAction = "create"
	TimelineUpdate TimelineAction = "update"
	TimelineDelete TimelineAction = "delete"
)

// ManageTimelineEvent creates, updates or deletes one timeline entry.
func (c *Client) ManageTimelineEvent(ctx context.Context, action TimelineAction, event models.TimelineEvent) (*models.TimelineResult, error) {
	args := struct {
		Action TimelineAction       `json:"action"`
		Event  models.TimelineEvent `json:"event"`
	}{action, event}
	var out models.TimelineResult
	if err := c.runScript(ctx, scriptManageTimelineEvent, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
