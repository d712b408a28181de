package company

import "context"

type CompanyService interface {
	// ListForSwitcher returns companies for the super-admin switcher,
	// oldest first, with the system master account filtered out.
	ListForSwitcher(ctx context.Context) ([]Company, error)
}

type CompanyServiceImpl struct {
	Repo CompanyRepository
}

func NewCompanyService(repo CompanyRepository) CompanyService {
	return &CompanyServiceImpl{Repo: repo}
}

func (s *CompanyServiceImpl) ListForSwitcher(ctx context.Context) ([]Company, error) {
	companies, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]Company, 0, len(companies))
	for _, c := range companies {
		if c.Name == MasterAccountName {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered, nil
}
