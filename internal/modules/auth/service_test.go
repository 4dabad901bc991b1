package auth

import (
	"context"
	"errors"
	"testing"

	"researchhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) CreateWithAccount(ctx context.Context, a *domain.Account, app *domain.RegistrationApplication) error {
	args := m.Called(ctx, a, app)
	if args.Error(0) == nil {
		a.ID = 42
		app.AccountID = 42
	}
	return args.Error(0)
}

func (m *MockRegistrationRepository) GetByAccountID(ctx context.Context, accountID int64) (*domain.RegistrationApplication, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistrationApplication), args.Error(1)
}

type stubJWT struct{ token string }

func (s stubJWT) GenerateToken(accountID int64) (string, error) { return s.token, nil }

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:         "New.Member@Example.org",
		Password:      "correct horse",
		Name:          "  New Member ",
		Motivation:    "want to contribute",
		FieldCategory: "Data Science",
		Skills:        []string{"python"},
	}
}

func TestRegister_CreatesPendingMember(t *testing.T) {
	ctx := context.Background()
	registrations := new(MockRegistrationRepository)
	svc := NewService(new(MockAccountRepository), registrations, stubJWT{})

	registrations.On("CreateWithAccount", ctx,
		mock.AnythingOfType("*domain.Account"),
		mock.AnythingOfType("*domain.RegistrationApplication")).Return(nil)

	account, application, err := svc.Register(ctx, validRegisterRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, account.Status)
	assert.Equal(t, domain.RoleMember, account.Role)
	assert.Equal(t, "new.member@example.org", account.Email, "email is normalized")
	assert.Equal(t, "New Member", account.Name)
	assert.Equal(t, "Data Science", application.FieldCategory)

	// The stored hash must verify against the raw password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("correct horse")))
}

func TestRegister_ExperienceDescriptionRequired(t *testing.T) {
	ctx := context.Background()
	registrations := new(MockRegistrationRepository)
	svc := NewService(new(MockAccountRepository), registrations, stubJWT{})

	req := validRegisterRequest()
	req.HasExperience = true
	req.ExperienceDescription = "   "

	_, _, err := svc.Register(ctx, req)

	assert.ErrorIs(t, err, ErrValidation)
	registrations.AssertNotCalled(t, "CreateWithAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_AvailabilityDaysRange(t *testing.T) {
	ctx := context.Background()
	svc := NewService(new(MockAccountRepository), new(MockRegistrationRepository), stubJWT{})

	req := validRegisterRequest()
	req.AvailabilityDays = 8
	_, _, err := svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrValidation)

	req.AvailabilityDays = -1
	_, _, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	registrations := new(MockRegistrationRepository)
	svc := NewService(new(MockAccountRepository), registrations, stubJWT{})

	registrations.On("CreateWithAccount", ctx, mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: accounts.email"))

	_, _, err := svc.Register(ctx, validRegisterRequest())

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	svc := NewService(accounts, new(MockRegistrationRepository), stubJWT{token: "signed-token"})

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	accounts.On("GetByEmail", ctx, "m@example.org").Return(&domain.Account{
		ID:           7,
		Email:        "m@example.org",
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		Status:       domain.StatusApproved,
	}, nil)

	result, err := svc.Login(ctx, LoginRequest{Email: "m@example.org", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.AccessToken)
	assert.True(t, result.Capabilities.Has(domain.CapSubmitContent))
}

func TestLogin_PendingAccountGetsStatusOnlyCapabilities(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	svc := NewService(accounts, new(MockRegistrationRepository), stubJWT{token: "t"})

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	accounts.On("GetByEmail", ctx, "p@example.org").Return(&domain.Account{
		ID:           8,
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		Status:       domain.StatusPending,
	}, nil)

	result, err := svc.Login(ctx, LoginRequest{Email: "p@example.org", Password: "secret123"})

	require.NoError(t, err, "pending accounts may log in to see their status")
	assert.True(t, result.Capabilities.Has(domain.CapViewOwnStatus))
	assert.False(t, result.Capabilities.Has(domain.CapSubmitContent))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	svc := NewService(accounts, new(MockRegistrationRepository), stubJWT{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	accounts.On("GetByEmail", ctx, "m@example.org").Return(&domain.Account{
		ID:           7,
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "m@example.org", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	svc := NewService(accounts, new(MockRegistrationRepository), stubJWT{})

	accounts.On("GetByEmail", ctx, "nobody@example.org").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.org", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email and bad password look the same")
}

func TestMe_ToleratesMissingApplication(t *testing.T) {
	ctx := context.Background()
	accounts := new(MockAccountRepository)
	registrations := new(MockRegistrationRepository)
	svc := NewService(accounts, registrations, stubJWT{})

	// Seeded admins have no questionnaire row.
	accounts.On("GetByID", ctx, int64(1)).Return(&domain.Account{
		ID: 1, Role: domain.RoleAdmin, Status: domain.StatusApproved,
	}, nil)
	registrations.On("GetByAccountID", ctx, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	account, caps, application, err := svc.Me(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)
	assert.True(t, caps.Has(domain.CapModerateAccounts))
	assert.Nil(t, application)
}
