package id

import "github.com/google/uuid"

// UUIDGenerator issues order identifiers.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator { return &UUIDGenerator{} }

func (*UUIDGenerator) NewID() string { return uuid.NewString() }

// PaymentRefGenerator issues payment references at the transport boundary.
// The confirmation use case treats the value as opaque.
type PaymentRefGenerator struct{}

func NewPaymentRefGenerator() *PaymentRefGenerator { return &PaymentRefGenerator{} }

func (*PaymentRefGenerator) NewRef() string { return "pay_" + uuid.NewString() }
