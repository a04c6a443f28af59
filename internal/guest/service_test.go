package guest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, g *Guest) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Guest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Guest), args.Error(1)
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*Guest, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Guest), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter Filter) ([]*Guest, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*Guest), args.Int(1), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, g *Guest) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockRepo) UpdateImage(ctx context.Context, id, image string) error {
	return m.Called(ctx, id, image).Error(0)
}

func (m *mockRepo) DeleteWithBookings(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestValidate(t *testing.T) {
	base := Guest{FullName: "Jonas Schmedtmann", Email: "jonas@example.com"}

	tests := []struct {
		name    string
		mutate  func(g *Guest)
		wantErr error
	}{
		{"Minimal", func(g *Guest) {}, nil},
		{"PhoneWithPlusAndSpaces", func(g *Guest) { g.PhoneNumber = "+20 100 123-4567" }, nil},
		{"PhoneTooShort", func(g *Guest) { g.PhoneNumber = "12345" }, ErrInvalidPhone},
		{"PhoneWithLetters", func(g *Guest) { g.PhoneNumber = "call-me-maybe" }, ErrInvalidPhone},
		{"TaggedEmail", func(g *Guest) { g.Email = "jonas+stays@example.co.uk" }, nil},
		{"EmailWithoutAt", func(g *Guest) { g.Email = "jonas.example.com" }, ErrInvalidEmail},
		{"EmailWithSpace", func(g *Guest) { g.Email = "jonas@exa mple.com" }, ErrInvalidEmail},
		{"MissingEmail", func(g *Guest) { g.Email = "" }, ErrEmailRequired},
		{"MissingName", func(g *Guest) { g.FullName = "" }, ErrFullNameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := base
			tt.mutate(&g)
			err := g.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByEmail", mock.Anything, "maria@example.com").Return(nil, ErrNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*guest.Guest")).Return(nil)

		g, err := NewService(repo).Create(context.Background(), CreateRequest{
			FullName: " Maria Gomez ", Email: "Maria@Example.com", Nationality: "Spain",
		})
		require.NoError(t, err)
		assert.Equal(t, "Maria Gomez", g.FullName)
		assert.Equal(t, "maria@example.com", g.Email)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByEmail", mock.Anything, "maria@example.com").Return(&Guest{ID: "g-1"}, nil)

		_, err := NewService(repo).Create(context.Background(), CreateRequest{
			FullName: "Maria", Email: "maria@example.com",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdate(t *testing.T) {
	current := func() *Guest {
		return &Guest{ID: "g-1", FullName: "Maria", Email: "maria@example.com"}
	}

	t.Run("EmailOwnedByOtherGuest", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, "g-1").Return(current(), nil)
		repo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&Guest{ID: "g-2"}, nil)

		email := "taken@example.com"
		_, err := NewService(repo).Update(context.Background(), "g-1", UpdateRequest{Email: &email})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("SameEmailDifferentCaseSkipsLookup", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, "g-1").Return(current(), nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		email := "MARIA@example.com"
		phone := "+34 600-000-000"
		g, err := NewService(repo).Update(context.Background(), "g-1", UpdateRequest{Email: &email, PhoneNumber: &phone})
		require.NoError(t, err)
		assert.Equal(t, "+34 600-000-000", g.PhoneNumber)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("InvalidPhone", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, "g-1").Return(current(), nil)

		phone := "123"
		_, err := NewService(repo).Update(context.Background(), "g-1", UpdateRequest{PhoneNumber: &phone})
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})
}

func TestGetByEmail_RejectsMalformed(t *testing.T) {
	repo := new(mockRepo)
	_, err := NewService(repo).GetByEmail(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}
