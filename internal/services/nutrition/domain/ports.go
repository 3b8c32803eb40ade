package domain

import "context"

// ResolverPort turns a food name into a Record and never fails
type ResolverPort interface {
	Resolve(ctx context.Context, food string) Record
}

// ServicePort is consumed by handlers
type ServicePort interface {
	ResolverPort
	Manual(ctx context.Context, in ManualInput) (ManualResult, error)
	Suggest(ctx context.Context, query string) Suggestions
}
