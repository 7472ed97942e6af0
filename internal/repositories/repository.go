package repositories

import "context"

// Repository aggregates the domain repositories behind a single handle so
// services can run multi-repository work inside one transaction.
type Repository interface {
	User() UserRepository
	Course() CourseRepository
	Enrollment() EnrollmentRepository
	Feedback() FeedbackRepository
	Material() MaterialRepository
	Status() StatusRepository

	// WithTransaction runs fn against a transaction-bound Repository. Any
	// error rolls the whole transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}
