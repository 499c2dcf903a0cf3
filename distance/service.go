package distance

import (
	"github.com/hupe1980/hashgeo/internal/indexmatrix"
	"github.com/hupe1980/hashgeo/model"
	"github.com/hupe1980/hashgeo/position"
	"golang.org/x/sync/errgroup"
)

// Service answers distances between hashed modules.
// It is immutable after NewService and safe for concurrent use.
type Service struct {
	pos    *position.Service
	matrix *indexmatrix.Symmetric // nil unless precomputed
}

type serviceOptions struct {
	precompute bool
	workers    int
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

// WithPrecompute fills the full distance matrix at construction, computing
// rows on up to workers goroutines. workers <= 0 means one.
//
// Memory grows with N²/2; an IC86-sized geometry takes about 120 MB.
func WithPrecompute(workers int) ServiceOption {
	return func(o *serviceOptions) {
		o.precompute = true
		o.workers = workers
	}
}

// NewService creates a distance service over the positions of pos.
func NewService(pos *position.Service, opts ...ServiceOption) (*Service, error) {
	var o serviceOptions
	for _, fn := range opts {
		fn(&o)
	}

	s := &Service{pos: pos}
	if !o.precompute {
		return s, nil
	}

	if o.workers <= 0 {
		o.workers = 1
	}

	n := pos.Size()
	positions := pos.Table()
	matrix := indexmatrix.NewSymmetric(n)

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := 0; i < n; i++ {
		row := matrix.Row(i)
		g.Go(func() error {
			pi := positions[i]
			// row[0] is the diagonal and stays zero.
			for j := i + 1; j < n; j++ {
				row[j-i] = Euclidean(pi, positions[j])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.matrix = matrix
	return s, nil
}

// Distance returns the Euclidean distance between the modules hashed under a and b.
func (s *Service) Distance(a, b model.Hash) (float64, error) {
	size := s.pos.Size()
	if err := model.CheckHash(a, size); err != nil {
		return 0, err
	}
	if err := model.CheckHash(b, size); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}
	if s.matrix != nil {
		return s.matrix.Get(int(a), int(b)), nil
	}

	pa, _ := s.pos.Position(a)
	pb, _ := s.pos.Position(b)
	return Euclidean(pa, pb), nil
}

// DistanceKeys returns the Euclidean distance between modules a and b.
func (s *Service) DistanceKeys(a, b model.ModuleKey) (float64, error) {
	hasher := s.pos.HashService()
	ha, err := hasher.HashFromKey(a)
	if err != nil {
		return 0, err
	}
	hb, err := hasher.HashFromKey(b)
	if err != nil {
		return 0, err
	}
	return s.Distance(ha, hb)
}

// Precomputed reports whether distances are served from a precomputed matrix.
func (s *Service) Precomputed() bool {
	return s.matrix != nil
}

// PositionService returns the underlying position service.
func (s *Service) PositionService() *position.Service {
	return s.pos
}

// VerifyAgainst checks the underlying positions against geo.
func (s *Service) VerifyAgainst(geo model.GeometryMap) error {
	return s.pos.VerifyAgainst(geo)
}
