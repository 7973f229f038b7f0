package reservation

import (
	"strings"

	"github.com/google/uuid"
)

const (
	MaxSessionIDLength = 128
	MaxOrderIDLength   = 128
)

type TargetKind string

const (
	TargetProduct TargetKind = "product"
	TargetVariant TargetKind = "variant"
)

// Target is either a ProductRef or a VariantRef. The unexported method keeps
// other packages from adding a third case.
type Target interface {
	Kind() TargetKind
	ID() uuid.UUID
	String() string
	isTarget()
}

type ProductRef struct{ id uuid.UUID }

func Product(id uuid.UUID) ProductRef { return ProductRef{id: id} }

func (p ProductRef) Kind() TargetKind { return TargetProduct }
func (p ProductRef) ID() uuid.UUID    { return p.id }
func (p ProductRef) String() string   { return "product:" + p.id.String() }
func (ProductRef) isTarget()          {}

type VariantRef struct{ id uuid.UUID }

func Variant(id uuid.UUID) VariantRef { return VariantRef{id: id} }

func (v VariantRef) Kind() TargetKind { return TargetVariant }
func (v VariantRef) ID() uuid.UUID    { return v.id }
func (v VariantRef) String() string   { return "variant:" + v.id.String() }
func (VariantRef) isTarget()          {}

// NewTarget builds a Target from a nullable pair as it arrives from JSON or a
// database row.
func NewTarget(productID, variantID *uuid.UUID) (Target, error) {
	switch {
	case productID != nil && variantID == nil:
		return ValidTarget(Product(*productID))
	case productID == nil && variantID != nil:
		return ValidTarget(Variant(*variantID))
	default:
		return nil, ErrInvalidTarget
	}
}

func ValidTarget(t Target) (Target, error) {
	if t == nil || t.ID() == uuid.Nil {
		return nil, ErrInvalidTarget
	}
	return t, nil
}

// TargetIDs splits a target back into the nullable column pair.
func TargetIDs(t Target) (productID, variantID *uuid.UUID) {
	id := t.ID()
	switch t.(type) {
	case ProductRef:
		return &id, nil
	case VariantRef:
		return nil, &id
	}
	return nil, nil
}

type HolderKind string

const (
	HolderUser    HolderKind = "user"
	HolderSession HolderKind = "session"
)

// Holder identifies who owns a reservation: a signed-in user or an anonymous
// checkout session.
type Holder interface {
	Kind() HolderKind
	String() string
	isHolder()
}

type UserHolder struct{ id uuid.UUID }

func User(id uuid.UUID) UserHolder { return UserHolder{id: id} }

func (u UserHolder) Kind() HolderKind { return HolderUser }
func (u UserHolder) ID() uuid.UUID    { return u.id }
func (u UserHolder) String() string   { return "user:" + u.id.String() }
func (UserHolder) isHolder()          {}

type SessionHolder struct{ id string }

func Session(id string) SessionHolder { return SessionHolder{id: strings.TrimSpace(id)} }

func (s SessionHolder) Kind() HolderKind { return HolderSession }
func (s SessionHolder) ID() string       { return s.id }
func (s SessionHolder) String() string   { return "session:" + s.id }
func (SessionHolder) isHolder()          {}

func NewHolder(userID *uuid.UUID, sessionID *string) (Holder, error) {
	switch {
	case userID != nil && sessionID == nil:
		return ValidHolder(User(*userID))
	case userID == nil && sessionID != nil:
		return ValidHolder(Session(*sessionID))
	default:
		return nil, ErrInvalidHolder
	}
}

func ValidHolder(h Holder) (Holder, error) {
	switch v := h.(type) {
	case UserHolder:
		if v.id == uuid.Nil {
			return nil, ErrInvalidHolder
		}
	case SessionHolder:
		if v.id == "" || len(v.id) > MaxSessionIDLength {
			return nil, ErrInvalidHolder
		}
	default:
		return nil, ErrInvalidHolder
	}
	return h, nil
}

func HolderIDs(h Holder) (userID *uuid.UUID, sessionID *string) {
	switch v := h.(type) {
	case UserHolder:
		id := v.id
		return &id, nil
	case SessionHolder:
		id := v.id
		return nil, &id
	}
	return nil, nil
}

type Quantity struct {
	value int
}

func NewQuantity(v int) (Quantity, error) {
	if v <= 0 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: v}, nil
}

func (q Quantity) Value() int { return q.value }

// OrderID is opaque to this package; only presence and length are checked.
type OrderID struct {
	value string
}

func NewOrderID(s string) (OrderID, error) {
	t := strings.TrimSpace(s)
	if t == "" || len(t) > MaxOrderIDLength {
		return OrderID{}, ErrInvalidOrderID
	}
	return OrderID{value: t}, nil
}

func (o OrderID) String() string { return o.value }
func (o OrderID) IsZero() bool   { return o.value == "" }

// LineItem is one row of a cart.
type LineItem struct {
	Target   Target
	Quantity int
}
