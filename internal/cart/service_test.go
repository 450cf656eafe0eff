package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	carts map[int]Data
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{carts: map[int]Data{}}
}

func (f *fakeRepository) Get(userID int) (Data, error) {
	data, ok := f.carts[userID]
	if !ok {
		return Data{}, nil
	}
	return data, nil
}

func (f *fakeRepository) Save(userID int, data Data) error {
	f.carts[userID] = data
	return nil
}

func (f *fakeRepository) Clear(userID int) error {
	f.carts[userID] = Data{}
	return nil
}

func TestAddIncrementsQuantity(t *testing.T) {
	s := NewService(newFakeRepository())

	data, err := s.Add(7, "12", "M")
	require.NoError(t, err)
	assert.Equal(t, 1, data["12"]["M"])

	data, err = s.Add(7, "12", "M")
	require.NoError(t, err)
	assert.Equal(t, 2, data["12"]["M"])
}

func TestAddSeparateSizes(t *testing.T) {
	s := NewService(newFakeRepository())

	_, err := s.Add(7, "12", "M")
	require.NoError(t, err)
	data, err := s.Add(7, "12", "L")
	require.NoError(t, err)

	assert.Equal(t, 1, data["12"]["M"])
	assert.Equal(t, 1, data["12"]["L"])
}

func TestAddRejectsInvalidInput(t *testing.T) {
	s := NewService(newFakeRepository())

	_, err := s.Add(0, "12", "M")
	assert.ErrorIs(t, err, ErrInvalidItem)
	_, err = s.Add(7, "", "M")
	assert.ErrorIs(t, err, ErrInvalidItem)
	_, err = s.Add(7, "12", "")
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestUpdateSetsQuantity(t *testing.T) {
	s := NewService(newFakeRepository())

	data, err := s.Update(7, "12", "M", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, data["12"]["M"])
}

func TestUpdateZeroRemovesEntry(t *testing.T) {
	s := NewService(newFakeRepository())

	_, err := s.Update(7, "12", "M", 5)
	require.NoError(t, err)
	data, err := s.Update(7, "12", "M", 0)
	require.NoError(t, err)

	_, ok := data["12"]
	assert.False(t, ok, "emptied item must be dropped from the cart map")
}

func TestClearCart(t *testing.T) {
	repo := newFakeRepository()
	s := NewService(repo)

	_, err := s.Add(7, "12", "M")
	require.NoError(t, err)
	require.NoError(t, s.ClearCart(7))

	data, err := s.Get(7)
	require.NoError(t, err)
	assert.Empty(t, data)
}
