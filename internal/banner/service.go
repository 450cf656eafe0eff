package banner

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// ListActive returns the banners the storefront should show. Errors collapse
// to an empty slice so the homepage renders without a hero instead of failing.
func (s *Service) ListActive() []Banner {
	banners, err := s.repo.ListActive()
	if err != nil {
		return []Banner{}
	}
	return banners
}

func (s *Service) List() ([]Banner, error) {
	return s.repo.List()
}

func (s *Service) Create(b Banner) (Banner, error) {
	return s.repo.Create(b)
}

func (s *Service) Update(id int, b Banner) (Banner, error) {
	return s.repo.Update(id, b)
}

func (s *Service) SetActive(id int, active bool) error {
	return s.repo.SetActive(id, active)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
