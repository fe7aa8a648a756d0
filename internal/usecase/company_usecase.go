package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/umair/tradeledger/internal/domain"
)

// CompanyUseCase handles company account management and authentication.
type CompanyUseCase struct {
	companyRepo CompanyRepository
	idGen       IDGenerator
}

// NewCompanyUseCase creates a new CompanyUseCase.
func NewCompanyUseCase(companyRepo CompanyRepository, idGen IDGenerator) *CompanyUseCase {
	return &CompanyUseCase{
		companyRepo: companyRepo,
		idGen:       idGen,
	}
}

// CreateCompanyInput represents input for registering a company.
type CreateCompanyInput struct {
	Username     string
	Email        string
	ShopName     string
	ShopNameUrdu string
	Password     string
}

// CreateCompany registers a new company with a hashed password.
func (uc *CompanyUseCase) CreateCompany(ctx context.Context, input CreateCompanyInput) (*domain.Company, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if input.Username == "" {
		return nil, errors.New("username is required")
	}

	existing, err := uc.companyRepo.GetByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, errors.New("company with this username already exists")
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	company := &domain.Company{
		ID:             uc.idGen.Generate(),
		Username:       input.Username,
		Email:          input.Email,
		ShopName:       input.ShopName,
		ShopNameUrdu:   input.ShopNameUrdu,
		HashedPassword: hashedPassword,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	return sanitized(company), nil
}

// AuthenticateInput represents authentication input.
type AuthenticateInput struct {
	Username string
	Password string
}

// Authenticate verifies company credentials.
func (uc *CompanyUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.Company, error) {
	company, err := uc.companyRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !company.Active {
		return nil, errors.New("company account is inactive")
	}

	if err := verifyPassword(company.HashedPassword, input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return sanitized(company), nil
}

// GetCompany retrieves a company by ID.
func (uc *CompanyUseCase) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	company, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return sanitized(company), nil
}

// UpdateCompanyInput represents input for updating a company.
type UpdateCompanyInput struct {
	ID           string
	Email        *string
	ShopName     *string
	ShopNameUrdu *string
	Active       *bool
	Password     *string
}

// UpdateCompany updates company information.
func (uc *CompanyUseCase) UpdateCompany(ctx context.Context, input UpdateCompanyInput) (*domain.Company, error) {
	company, err := uc.companyRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := domain.ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
		company.Email = *input.Email
	}
	if input.ShopName != nil {
		company.ShopName = *input.ShopName
	}
	if input.ShopNameUrdu != nil {
		company.ShopNameUrdu = *input.ShopNameUrdu
	}
	if input.Active != nil {
		company.Active = *input.Active
	}
	if input.Password != nil {
		if err := domain.ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
		hashedPassword, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		company.HashedPassword = hashedPassword
	}

	company.UpdatedAt = time.Now().UTC()

	if err := uc.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	return sanitized(company), nil
}

// ListCompanies lists companies with pagination.
func (uc *CompanyUseCase) ListCompanies(ctx context.Context, limit, offset int) ([]*domain.Company, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	companies, err := uc.companyRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Company, len(companies))
	for i, company := range companies {
		out[i] = sanitized(company)
	}

	return out, nil
}

// sanitized returns a copy safe to hand out of the use case. The
// repository's record keeps its hash; callers never see it.
func sanitized(company *domain.Company) *domain.Company {
	out := *company
	out.HashedPassword = ""
	return &out
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword verifies a password against a hash
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
