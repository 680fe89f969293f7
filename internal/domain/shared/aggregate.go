package shared

// AggregateRoot marks the consistency boundary of a domain aggregate. A
// production order and its lines save together through the root, and the
// events the root records are published after the transaction commits.
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot embeds versioning and event recording for aggregate
// roots. Version backs optimistic locking in the repositories, so repeated
// dispatch of the same order fails on the stale copy instead of double
// counting stock.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent records an event for publication after the surrounding
// transaction commits
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot initializes a root at version 1 with no pending events
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}
