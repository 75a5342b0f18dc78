package ports

import (
	"context"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

// SISClient is the upstream Student Information System the dashboard reads
// from and writes to. Implementations wrap transport problems and non-JSON
// bodies in domain.ErrNetworkFailure and success=false answers in
// domain.ErrApplicationFailure.
type SISClient interface {
	ListCounselors(ctx context.Context) ([]domain.Counselor, error)
	ListStudents(ctx context.Context) ([]domain.Student, error)
	ListMessages(ctx context.Context) ([]domain.Message, error)

	CreateCounselor(ctx context.Context, c domain.Counselor) error
	DeleteCounselor(ctx context.Context, username string) error
	CreateStudent(ctx context.Context, s domain.Student) error
}
