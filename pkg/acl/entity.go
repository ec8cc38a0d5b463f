package acl

import (
	"encoding/json"
	"fmt"
)

type EntityKind int

const (
	EntityKindAddress EntityKind = iota
	EntityKindAny
	EntityKindBurn
	EntityKindApp
)

func (k EntityKind) String() string {
	switch k {
	case EntityKindAddress:
		return "address"
	case EntityKindAny:
		return "any"
	case EntityKindBurn:
		return "burn"
	case EntityKindApp:
		return "app"
	default:
		return fmt.Sprintf("entity-kind(%d)", int(k))
	}
}

func (k EntityKind) MarshalText() ([]byte, error) {
	switch k {
	case EntityKindAddress, EntityKindAny, EntityKindBurn, EntityKindApp:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("acl: unknown entity kind %d", int(k))
	}
}

func (k *EntityKind) UnmarshalText(text []byte) error {
	for _, kind := range []EntityKind{EntityKindAddress, EntityKindAny, EntityKindBurn, EntityKindApp} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}

	return fmt.Errorf("acl: unknown entity kind %q", text)
}

// Entity is a resolved participant of the ACL. App is set only when Kind is
// EntityKindApp.
type Entity struct {
	Address string     `json:"address"`
	Kind    EntityKind `json:"type"`
	App     *App       `json:"app,omitempty"`
}

func NewAddressEntity(address string) Entity {
	return Entity{Address: NormalizeAddress(address), Kind: EntityKindAddress}
}

func NewAnyEntity() Entity {
	return Entity{Address: AnyEntityAddress, Kind: EntityKindAny}
}

func NewBurnEntity() Entity {
	return Entity{Address: BurnEntityAddress, Kind: EntityKindBurn}
}

func NewAppEntity(app App) Entity {
	return Entity{Address: NormalizeAddress(app.ProxyAddress), Kind: EntityKindApp, App: &app}
}

// EntityVisitor has one method per entity kind, so adding a kind breaks
// every consumer at compile time.
type EntityVisitor interface {
	VisitAddress(entity Entity)
	VisitAny(entity Entity)
	VisitBurn(entity Entity)
	VisitApp(entity Entity, app App)
}

// Accept visits an app entity that lost its app as a plain address.
func (e Entity) Accept(visitor EntityVisitor) {
	switch {
	case e.Kind == EntityKindAny:
		visitor.VisitAny(e)
	case e.Kind == EntityKindBurn:
		visitor.VisitBurn(e)
	case e.Kind == EntityKindApp && e.App != nil:
		visitor.VisitApp(e, *e.App)
	default:
		visitor.VisitAddress(e)
	}
}

func (e *Entity) UnmarshalJSON(b []byte) error {
	type entity Entity

	var decoded entity
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}

	if decoded.Kind == EntityKindApp && decoded.App == nil {
		return ErrAppEntityWithoutApp
	}

	*e = Entity(decoded)
	return nil
}

func (e Entity) Label() string {
	l := &entityLabeler{}
	e.Accept(l)
	return l.label
}

type entityLabeler struct {
	label string
}

func (l *entityLabeler) VisitAddress(entity Entity) { l.label = entity.Address }
func (l *entityLabeler) VisitAny(Entity)            { l.label = "Any account" }
func (l *entityLabeler) VisitBurn(Entity)           { l.label = "Burned" }
func (l *entityLabeler) VisitApp(_ Entity, app App) { l.label = app.DisplayName() }
