package devicecal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"familycore/pkg/domain"
)

// Exporter writes events into a Google Calendar.
type Exporter struct {
	service    *calendar.Service
	calendarID string
	location   *time.Location
}

// NewExporter builds an Exporter authenticated with service-account
// credentials JSON. calendarID is typically "primary".
func NewExporter(ctx context.Context, credentialsJSON []byte, calendarID string, loc *time.Location) (*Exporter, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.Local
	}
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("load google credentials: %w", err)
	}
	service, err := calendar.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Exporter{service: service, calendarID: calendarID, location: loc}, nil
}

// Export inserts event into the device calendar and returns the created
// event's id. Events without a parseable date are skipped with an error.
func (e *Exporter) Export(ctx context.Context, event domain.CalendarEvent) (string, error) {
	win, ok := Window(event, e.location)
	if !ok {
		return "", fmt.Errorf("event %s has no usable date %q", event.ID, event.Date)
	}
	entry := &calendar.Event{
		Summary: event.Title,
		Start:   &calendar.EventDateTime{DateTime: win.Start.Format(time.RFC3339), TimeZone: e.location.String()},
		End:     &calendar.EventDateTime{DateTime: win.End.Format(time.RFC3339), TimeZone: e.location.String()},
	}
	created, err := e.service.Events.Insert(e.calendarID, entry).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return created.Id, nil
}

// ExportAll inserts every exportable event and returns the created ids keyed
// by the source event id. Unexportable events are skipped silently.
func (e *Exporter) ExportAll(ctx context.Context, events []domain.CalendarEvent) (map[string]string, error) {
	created := make(map[string]string, len(events))
	for _, ev := range events {
		if _, ok := Window(ev, e.location); !ok {
			continue
		}
		id, err := e.Export(ctx, ev)
		if err != nil {
			return created, err
		}
		created[ev.ID] = id
	}
	return created, nil
}
