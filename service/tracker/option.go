package tracker

// Option customizes a tracker instance.
type Option func(s *Service)

// WithPeakRetention controls what happens to an executor's peak entry when
// the same id registers again after a removal. The default (false) starts a
// fresh entry; passing true carries the old high-water mark across the
// re-registration.
func WithPeakRetention(retain bool) Option {
	return func(s *Service) {
		s.retainPeaks = retain
	}
}
