package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/Nexus/internal/order"
	"github.com/mamadbah2/Nexus/internal/product"
)

// MockProductClient is a mock implementation of product.Client
type MockProductClient struct {
	mock.Mock
}

func (m *MockProductClient) List(ctx context.Context, params product.QueryParams) (*product.Page, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Page), args.Error(1)
}

func (m *MockProductClient) Search(ctx context.Context, search product.SearchParams, params product.QueryParams) (*product.Page, error) {
	args := m.Called(ctx, search, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Page), args.Error(1)
}

func (m *MockProductClient) Suggest(ctx context.Context, query string) ([]string, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductClient) Get(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductClient) Transcribe(ctx context.Context, audio []byte, mimeType, language string) (*product.Transcription, error) {
	args := m.Called(ctx, audio, mimeType, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Transcription), args.Error(1)
}

// MockCartService is a mock implementation of cart.Service
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockCartService) AddItemToCart(ctx context.Context, productID string, quantity int, price float64) (*order.Order, error) {
	args := m.Called(ctx, productID, quantity, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockCartService) UpdateCartItem(ctx context.Context, cartID, productID string, quantity int) (*order.Order, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, cartID, productID string) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *fakeNotifier) Error(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func page(content []product.Product, number, totalPages int, totalElements int64) *product.Page {
	return &product.Page{
		Content:          content,
		TotalElements:    totalElements,
		TotalPages:       totalPages,
		Size:             20,
		Number:           number,
		NumberOfElements: len(content),
		First:            number == 0,
		Last:             number == totalPages-1,
	}
}

func twoProducts() []product.Product {
	return []product.Product{
		{ID: "p-b", Name: "Banana", Price: "200"},
		{ID: "p-a", Name: "avocado", Price: "100"},
	}
}

func loadedView(t *testing.T, content []product.Product, number, totalPages int, totalElements int64) (*View, *MockProductClient, *MockCartService, *fakeNotifier) {
	t.Helper()
	mockProducts := new(MockProductClient)
	mockCarts := new(MockCartService)
	notifier := &fakeNotifier{}
	view := NewView(mockProducts, mockCarts, notifier)

	mockProducts.On("List", mock.Anything, product.QueryParams{Page: number, Size: 20}).
		Return(page(content, number, totalPages, totalElements), nil).Once()
	require.NoError(t, view.Load(context.Background()))
	return view, mockProducts, mockCarts, notifier
}

func names(items []product.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

func TestView_Load(t *testing.T) {
	t.Run("Mirrors the server pagination", func(t *testing.T) {
		view, _, _, _ := loadedView(t, twoProducts(), 0, 5, 90)

		pg := view.Pagination()
		assert.Equal(t, int64(90), pg.TotalElements)
		assert.Equal(t, 5, pg.TotalPages)
		assert.Equal(t, 0, pg.CurrentPage)
		assert.True(t, pg.First)
		assert.False(t, pg.Last)
		assert.Len(t, view.Products(), 2)
	})

	t.Run("Failure clears the page", func(t *testing.T) {
		mockProducts := new(MockProductClient)
		view := NewView(mockProducts, new(MockCartService), &fakeNotifier{})

		mockProducts.On("List", mock.Anything, mock.Anything).
			Return(nil, errors.New("backend down")).Once()

		err := view.Load(context.Background())

		assert.Error(t, err)
		assert.Empty(t, view.Products())
	})
}

func TestView_SortBy(t *testing.T) {
	t.Run("Name starts ascending then toggles", func(t *testing.T) {
		view, _, _, _ := loadedView(t, twoProducts(), 0, 1, 2)

		view.SortBy(SortName)

		col, dir := view.SortState()
		assert.Equal(t, SortName, col)
		assert.Equal(t, Ascending, dir)
		// Case-insensitive: "avocado" sorts before "Banana".
		assert.Equal(t, []string{"avocado", "Banana"}, names(view.Products()))

		view.SortBy(SortName)

		_, dir = view.SortState()
		assert.Equal(t, Descending, dir)
		assert.Equal(t, []string{"Banana", "avocado"}, names(view.Products()))
	})

	t.Run("Price starts descending then toggles", func(t *testing.T) {
		view, _, _, _ := loadedView(t, twoProducts(), 0, 1, 2)

		view.SortBy(SortPrice)

		col, dir := view.SortState()
		assert.Equal(t, SortPrice, col)
		assert.Equal(t, Descending, dir)
		assert.Equal(t, []string{"Banana", "avocado"}, names(view.Products()))

		view.SortBy(SortPrice)

		_, dir = view.SortState()
		assert.Equal(t, Ascending, dir)
		assert.Equal(t, []string{"avocado", "Banana"}, names(view.Products()))
	})

	t.Run("Switching columns resets to the new column default", func(t *testing.T) {
		view, _, _, _ := loadedView(t, twoProducts(), 0, 1, 2)

		view.SortBy(SortName)
		view.SortBy(SortName)
		view.SortBy(SortPrice)

		col, dir := view.SortState()
		assert.Equal(t, SortPrice, col)
		assert.Equal(t, Descending, dir)
	})
}

func TestView_Pagination(t *testing.T) {
	ctx := context.Background()

	t.Run("NextPage advances", func(t *testing.T) {
		view, mockProducts, _, _ := loadedView(t, twoProducts(), 0, 3, 50)

		mockProducts.On("List", mock.Anything, product.QueryParams{Page: 1, Size: 20}).
			Return(page(nil, 1, 3, 50), nil).Once()

		require.NoError(t, view.NextPage(ctx))

		assert.Equal(t, 1, view.Pagination().CurrentPage)
		mockProducts.AssertExpectations(t)
	})

	t.Run("NextPage on the last page is a no-op", func(t *testing.T) {
		view, mockProducts, _, _ := loadedView(t, twoProducts(), 2, 3, 50)

		require.NoError(t, view.NextPage(ctx))

		assert.Equal(t, 2, view.Pagination().CurrentPage)
		mockProducts.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("PreviousPage on the first page is a no-op", func(t *testing.T) {
		view, mockProducts, _, _ := loadedView(t, twoProducts(), 0, 3, 50)

		require.NoError(t, view.PreviousPage(ctx))

		assert.Equal(t, 0, view.Pagination().CurrentPage)
		mockProducts.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("GoToPage ignores out-of-range and current page", func(t *testing.T) {
		view, mockProducts, _, _ := loadedView(t, twoProducts(), 1, 3, 50)

		require.NoError(t, view.GoToPage(ctx, -1))
		require.NoError(t, view.GoToPage(ctx, 3))
		require.NoError(t, view.GoToPage(ctx, 1))

		mockProducts.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("SetPageSize reloads from the first page", func(t *testing.T) {
		view, mockProducts, _, _ := loadedView(t, twoProducts(), 2, 3, 50)

		mockProducts.On("List", mock.Anything, product.QueryParams{Page: 0, Size: 36}).
			Return(page(nil, 0, 2, 50), nil).Once()

		require.NoError(t, view.SetPageSize(ctx, 36))

		assert.Equal(t, 0, view.Pagination().CurrentPage)
		mockProducts.AssertExpectations(t)
	})

	t.Run("SetPageSize same size is a no-op", func(t *testing.T) {
		view, mockProducts, _, _ := loadedView(t, twoProducts(), 0, 3, 50)

		require.NoError(t, view.SetPageSize(ctx, 20))

		mockProducts.AssertNumberOfCalls(t, "List", 1)
	})
}

func TestView_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("Resets to the first page", func(t *testing.T) {
		view, mockProducts, _, _ := loadedView(t, twoProducts(), 1, 3, 50)

		mockProducts.On("Search", mock.Anything,
			product.SearchParams{Query: "mango"},
			product.QueryParams{Page: 0, Size: 20}).
			Return(page(nil, 0, 1, 0), nil).Once()

		require.NoError(t, view.Search(ctx, "mango"))

		assert.Equal(t, 0, view.Pagination().CurrentPage)
		mockProducts.AssertExpectations(t)
	})

	t.Run("Blank term lists instead of searching", func(t *testing.T) {
		mockProducts := new(MockProductClient)
		view := NewView(mockProducts, new(MockCartService), &fakeNotifier{})

		mockProducts.On("List", mock.Anything, product.QueryParams{Page: 0, Size: 20}).
			Return(page(nil, 0, 1, 0), nil).Once()

		require.NoError(t, view.Search(ctx, "   "))

		mockProducts.AssertNotCalled(t, "Search")
	})
}

func TestView_Refresh(t *testing.T) {
	view, mockProducts, _, _ := loadedView(t, twoProducts(), 1, 3, 50)
	view.SortBy(SortPrice)

	mockProducts.On("List", mock.Anything, product.QueryParams{Page: 0, Size: 20}).
		Return(page(nil, 0, 3, 50), nil).Once()

	require.NoError(t, view.Refresh(context.Background()))

	col, dir := view.SortState()
	assert.Equal(t, SortNone, col)
	assert.Equal(t, Descending, dir)
	assert.Equal(t, 0, view.Pagination().CurrentPage)
}

func TestView_AddToCart(t *testing.T) {
	ctx := context.Background()
	mango := product.Product{ID: "p-1", Name: "Mango", Price: "1500"}

	t.Run("Success notifies with the product name", func(t *testing.T) {
		mockCarts := new(MockCartService)
		notifier := &fakeNotifier{}
		view := NewView(new(MockProductClient), mockCarts, notifier)

		mockCarts.On("AddItemToCart", ctx, "p-1", 1, 1500.0).
			Return(&order.Order{ID: "cart-1"}, nil).Once()

		err := view.AddToCart(ctx, mango)

		require.NoError(t, err)
		assert.Contains(t, notifier.successes, "Mango added to cart!")
		mockCarts.AssertExpectations(t)
	})

	t.Run("Failure notifies an error", func(t *testing.T) {
		mockCarts := new(MockCartService)
		notifier := &fakeNotifier{}
		view := NewView(new(MockProductClient), mockCarts, notifier)

		mockCarts.On("AddItemToCart", ctx, "p-1", 1, 1500.0).
			Return(nil, errors.New("out of stock")).Once()

		err := view.AddToCart(ctx, mango)

		assert.Error(t, err)
		assert.Contains(t, notifier.errors, "Failed to add to cart")
	})
}

func TestView_Range(t *testing.T) {
	t.Run("Middle page", func(t *testing.T) {
		view, _, _, _ := loadedView(t, twoProducts(), 1, 7, 130)

		assert.Equal(t, int64(21), view.RangeStart())
		assert.Equal(t, int64(40), view.RangeEnd())
	})

	t.Run("Last partial page caps at the total", func(t *testing.T) {
		view, _, _, _ := loadedView(t, twoProducts(), 6, 7, 130)

		assert.Equal(t, int64(121), view.RangeStart())
		assert.Equal(t, int64(130), view.RangeEnd())
	})

	t.Run("Empty result set", func(t *testing.T) {
		view, _, _, _ := loadedView(t, nil, 0, 1, 0)

		assert.Equal(t, int64(0), view.RangeStart())
		assert.Equal(t, int64(0), view.RangeEnd())
	})
}
