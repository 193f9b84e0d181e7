// Package memstore provides in-memory repositories for use case tests. They follow
// the contracts of the SQL repositories, including compare-and-swap on leads and
// newest-first event listing.
package memstore

import (
	"context"
	"sort"
	"sync"

	campaignDomain "github.com/allisson/outreach/internal/campaign/domain"
	dailymetricDomain "github.com/allisson/outreach/internal/dailymetric/domain"
	eventlogDomain "github.com/allisson/outreach/internal/eventlog/domain"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
	outboxDomain "github.com/allisson/outreach/internal/outbox/domain"
)

// TxManager runs fn directly. Writes are not rolled back on error.
type TxManager struct{}

// WithTx calls fn with ctx.
func (TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Leads is an in-memory lead repository.
type Leads struct {
	mu    sync.Mutex
	leads map[string]*leadDomain.Lead
}

// NewLeads returns a repository seeded with leads.
func NewLeads(leads ...*leadDomain.Lead) *Leads {
	l := &Leads{leads: make(map[string]*leadDomain.Lead)}
	for _, lead := range leads {
		l.leads[lead.ID] = copyLead(lead)
	}
	return l
}

func (l *Leads) Create(_ context.Context, lead *leadDomain.Lead) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.leads[lead.ID] = copyLead(lead)
	return nil
}

func (l *Leads) Get(_ context.Context, id string) (*leadDomain.Lead, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lead, ok := l.leads[id]
	if !ok {
		return nil, leadDomain.ErrLeadNotFound
	}
	return copyLead(lead), nil
}

func (l *Leads) Update(_ context.Context, lead *leadDomain.Lead) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.leads[lead.ID]; !ok {
		return leadDomain.ErrLeadNotFound
	}
	l.leads[lead.ID] = copyLead(lead)
	return nil
}

func (l *Leads) CompareAndSwap(
	_ context.Context,
	lead *leadDomain.Lead,
	expectedStatus leadDomain.Status,
	expectedSendCount int,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	stored, ok := l.leads[lead.ID]
	if !ok || stored.Status != expectedStatus || stored.SendCount != expectedSendCount {
		return leadDomain.ErrConcurrentUpdate
	}
	l.leads[lead.ID] = copyLead(lead)
	return nil
}

func (l *Leads) List(
	_ context.Context,
	status *leadDomain.Status,
	offset, limit int,
) ([]*leadDomain.Lead, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	leads := make([]*leadDomain.Lead, 0)
	for _, lead := range l.leads {
		if status == nil || lead.Status == *status {
			leads = append(leads, copyLead(lead))
		}
	}
	sort.Slice(leads, func(i, j int) bool {
		if leads[i].CreatedAt.Equal(leads[j].CreatedAt) {
			return leads[i].ID > leads[j].ID
		}
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	return page(leads, offset, limit), nil
}

// Lead returns the stored copy of id, or nil.
func (l *Leads) Lead(id string) *leadDomain.Lead {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lead, ok := l.leads[id]; ok {
		return copyLead(lead)
	}
	return nil
}

func copyLead(lead *leadDomain.Lead) *leadDomain.Lead {
	c := *lead
	if lead.LastSentAt != nil {
		t := *lead.LastSentAt
		c.LastSentAt = &t
	}
	if lead.NextScheduledAt != nil {
		t := *lead.NextScheduledAt
		c.NextScheduledAt = &t
	}
	if lead.Metadata != nil {
		c.Metadata = make(map[string]any, len(lead.Metadata))
		for k, v := range lead.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

// Campaigns is an in-memory campaign repository.
type Campaigns struct {
	mu        sync.Mutex
	campaigns map[string]*campaignDomain.Campaign
}

// NewCampaigns returns a repository seeded with campaigns.
func NewCampaigns(campaigns ...*campaignDomain.Campaign) *Campaigns {
	c := &Campaigns{campaigns: make(map[string]*campaignDomain.Campaign)}
	for _, campaign := range campaigns {
		copied := *campaign
		c.campaigns[campaign.ID] = &copied
	}
	return c
}

func (c *Campaigns) Create(_ context.Context, campaign *campaignDomain.Campaign) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.campaigns[campaign.ID]; ok {
		return campaignDomain.ErrCampaignExists
	}
	copied := *campaign
	c.campaigns[campaign.ID] = &copied
	return nil
}

func (c *Campaigns) UpdateStatus(_ context.Context, id string, status campaignDomain.Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	campaign, ok := c.campaigns[id]
	if !ok {
		return campaignDomain.ErrCampaignNotFound
	}
	campaign.Status = status
	return nil
}

func (c *Campaigns) Get(_ context.Context, id string) (*campaignDomain.Campaign, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	campaign, ok := c.campaigns[id]
	if !ok {
		return nil, campaignDomain.ErrCampaignNotFound
	}
	copied := *campaign
	return &copied, nil
}

func (c *Campaigns) List(_ context.Context, offset, limit int) ([]*campaignDomain.Campaign, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	campaigns := make([]*campaignDomain.Campaign, 0, len(c.campaigns))
	for _, campaign := range c.campaigns {
		copied := *campaign
		campaigns = append(campaigns, &copied)
	}
	sort.Slice(campaigns, func(i, j int) bool { return campaigns[i].CreatedAt.After(campaigns[j].CreatedAt) })
	return page(campaigns, offset, limit), nil
}

// Events is an in-memory append-only event log.
type Events struct {
	mu      sync.Mutex
	nextID  int64
	entries []*eventlogDomain.Entry
}

// NewEvents returns an empty event log.
func NewEvents() *Events {
	return &Events{}
}

func (e *Events) Append(_ context.Context, entry *eventlogDomain.Entry) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	entry.ID = e.nextID
	copied := *entry
	e.entries = append(e.entries, &copied)
	return nil
}

func (e *Events) ListByLead(_ context.Context, leadID string, offset, limit int) ([]*eventlogDomain.Entry, error) {
	return page(e.ByLead(leadID), offset, limit), nil
}

// ByLead returns every entry of leadID, newest first.
func (e *Events) ByLead(leadID string) []*eventlogDomain.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := make([]*eventlogDomain.Entry, 0)
	for i := len(e.entries) - 1; i >= 0; i-- {
		if e.entries[i].LeadID == leadID {
			copied := *e.entries[i]
			entries = append(entries, &copied)
		}
	}
	return entries
}

// Types returns the event types of leadID in insertion order.
func (e *Events) Types(leadID string) []eventlogDomain.EventType {
	entries := e.ByLead(leadID)
	types := make([]eventlogDomain.EventType, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		types = append(types, entries[i].EventType)
	}
	return types
}

// Metrics is an in-memory daily metric repository.
type Metrics struct {
	mu   sync.Mutex
	rows map[string]*dailymetricDomain.DailyMetric
}

// NewMetrics returns an empty metric store.
func NewMetrics() *Metrics {
	return &Metrics{rows: make(map[string]*dailymetricDomain.DailyMetric)}
}

func (m *Metrics) Increment(_ context.Context, date string, counter dailymetricDomain.Counter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[date]
	if !ok {
		row = dailymetricDomain.Empty(date)
		m.rows[date] = row
	}
	switch counter {
	case dailymetricDomain.CounterSent:
		row.SentCount++
	case dailymetricDomain.CounterReply:
		row.ReplyCount++
	case dailymetricDomain.CounterPositive:
		row.PositiveCount++
	case dailymetricDomain.CounterBounce:
		row.BounceCount++
	default:
		return dailymetricDomain.ErrUnknownCounter
	}
	return nil
}

func (m *Metrics) Get(_ context.Context, date string) (*dailymetricDomain.DailyMetric, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[date]; ok {
		copied := *row
		return &copied, nil
	}
	return dailymetricDomain.Empty(date), nil
}

// Outbox is an in-memory outbox event repository.
type Outbox struct {
	mu     sync.Mutex
	events []*outboxDomain.OutboxEvent
}

// NewOutbox returns an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Create(_ context.Context, event *outboxDomain.OutboxEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	copied := *event
	o.events = append(o.events, &copied)
	return nil
}

func (o *Outbox) GetPendingEvents(_ context.Context, limit int) ([]*outboxDomain.OutboxEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	pending := make([]*outboxDomain.OutboxEvent, 0)
	for _, event := range o.events {
		if event.Status == outboxDomain.OutboxEventStatusPending {
			copied := *event
			pending = append(pending, &copied)
		}
	}
	return page(pending, 0, limit), nil
}

func (o *Outbox) Update(_ context.Context, event *outboxDomain.OutboxEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, stored := range o.events {
		if stored.ID == event.ID {
			copied := *event
			o.events[i] = &copied
			return nil
		}
	}
	return nil
}

// Types returns the event types in insertion order.
func (o *Outbox) Types() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	types := make([]string, 0, len(o.events))
	for _, event := range o.events {
		types = append(types, event.EventType)
	}
	return types
}

// Events returns a copy of every stored event.
func (o *Outbox) Events() []outboxDomain.OutboxEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	events := make([]outboxDomain.OutboxEvent, 0, len(o.events))
	for _, event := range o.events {
		events = append(events, *event)
	}
	return events
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
