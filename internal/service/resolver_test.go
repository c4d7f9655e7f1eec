// internal/service/resolver_test.go
package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"finflow-ledger/internal/domain"
	"finflow-ledger/internal/util"
)

func TestResolveDefaultWalletAndCategory(t *testing.T) {
	userID := "user-1"
	defaultWallet := &domain.Wallet{ID: "wallet-default", UserID: userID, Name: domain.DefaultWalletName}
	otherCategory := &domain.Category{ID: "cat-other", UserID: userID, Name: domain.DefaultCategoryName, Color: domain.DefaultCategoryColor}

	t.Run("ExistingDefaultsAndOwnCategory", func(t *testing.T) {
		ctx := context.Background()
		m := newMockSet()
		r := NewResolver(m.deps)
		food := &domain.Category{ID: "cat-food", UserID: userID, Name: "Food"}
		categoryID := food.ID

		m.wallets.On("GetWalletByName", ctx, m.executor, userID, domain.DefaultWalletName).Return(defaultWallet, nil).Once()
		m.categories.On("GetCategoryByID", ctx, m.executor, userID, food.ID).Return(food, nil).Once()

		walletID, gotCategory, err := r.ResolveDefaultWalletAndCategory(ctx, userID, &categoryID)

		require.NoError(t, err)
		assert.Equal(t, defaultWallet.ID, walletID)
		assert.Equal(t, food.ID, gotCategory)
		m.wallets.AssertNotCalled(t, "CreateWallet", mock.Anything, mock.Anything, mock.Anything)
		mock.AssertExpectationsForObjects(t, m.all()...)
	})

	t.Run("CreatesMissingDefaults", func(t *testing.T) {
		ctx := context.Background()
		m := newMockSet()
		r := NewResolver(m.deps)

		m.wallets.On("GetWalletByName", ctx, m.executor, userID, domain.DefaultWalletName).Return(nil, util.ErrNotFound).Once()
		m.wallets.On("CreateWallet", ctx, m.executor, mock.MatchedBy(func(w *domain.Wallet) bool {
			return w.UserID == userID && w.Name == domain.DefaultWalletName && w.Kind() == domain.WalletKindCash
		})).Return(nil).Once()
		m.categories.On("GetCategoryByName", ctx, m.executor, userID, domain.DefaultCategoryName).Return(nil, util.ErrNotFound).Once()
		m.categories.On("CreateCategory", ctx, m.executor, mock.MatchedBy(func(c *domain.Category) bool {
			return c.UserID == userID && c.Name == domain.DefaultCategoryName && c.Color == domain.DefaultCategoryColor
		})).Return(nil).Once()

		walletID, categoryID, err := r.ResolveDefaultWalletAndCategory(ctx, userID, nil)

		require.NoError(t, err)
		assert.NotEmpty(t, walletID)
		assert.NotEmpty(t, categoryID)
		mock.AssertExpectationsForObjects(t, m.all()...)
	})

	t.Run("LostCreationRaceRefetchesWinner", func(t *testing.T) {
		ctx := context.Background()
		m := newMockSet()
		r := NewResolver(m.deps)

		m.wallets.On("GetWalletByName", ctx, m.executor, userID, domain.DefaultWalletName).Return(nil, util.ErrNotFound).Once()
		m.wallets.On("CreateWallet", ctx, m.executor, mock.AnythingOfType("*domain.Wallet")).
			Return(errors.Join(errors.New("UNIQUE constraint failed"), util.ErrDuplicateEntry)).Once()
		m.wallets.On("GetWalletByName", ctx, m.executor, userID, domain.DefaultWalletName).Return(defaultWallet, nil).Once()
		m.categories.On("GetCategoryByName", ctx, m.executor, userID, domain.DefaultCategoryName).Return(otherCategory, nil).Once()

		walletID, categoryID, err := r.ResolveDefaultWalletAndCategory(ctx, userID, nil)

		require.NoError(t, err)
		assert.Equal(t, defaultWallet.ID, walletID)
		assert.Equal(t, otherCategory.ID, categoryID)
		mock.AssertExpectationsForObjects(t, m.all()...)
	})

	t.Run("ForeignCategoryFallsBackToOther", func(t *testing.T) {
		ctx := context.Background()
		m := newMockSet()
		r := NewResolver(m.deps)
		foreign := "cat-of-another-user"

		m.wallets.On("GetWalletByName", ctx, m.executor, userID, domain.DefaultWalletName).Return(defaultWallet, nil).Once()
		m.categories.On("GetCategoryByID", ctx, m.executor, userID, foreign).Return(nil, util.ErrNotFound).Once()
		m.categories.On("GetCategoryByName", ctx, m.executor, userID, domain.DefaultCategoryName).Return(otherCategory, nil).Once()

		_, categoryID, err := r.ResolveDefaultWalletAndCategory(ctx, userID, &foreign)

		require.NoError(t, err)
		assert.Equal(t, otherCategory.ID, categoryID)
		mock.AssertExpectationsForObjects(t, m.all()...)
	})

	t.Run("StoreFailureIsTyped", func(t *testing.T) {
		ctx := context.Background()
		m := newMockSet()
		r := NewResolver(m.deps)

		m.wallets.On("GetWalletByName", ctx, m.executor, userID, domain.DefaultWalletName).Return(nil, errors.New("connection reset")).Once()

		_, _, err := r.ResolveDefaultWalletAndCategory(ctx, userID, nil)

		assert.ErrorIs(t, err, util.ErrStoreFailure)
		var storeErr *util.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "get default wallet", storeErr.Op)
		mock.AssertExpectationsForObjects(t, m.all()...)
	})
}

func TestResolveDefaultWallet_ConcurrentCallersShareOneRow(t *testing.T) {
	deps, _ := newSQLiteDeps(t, fixedNow)
	user := seedUser(t, deps, "racer@example.com", "+5511900000001")
	r := NewResolver(deps)

	const callers = 8
	walletIDs := make([]string, callers)
	categoryIDs := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			walletIDs[i], categoryIDs[i], errs[i] = r.ResolveDefaultWalletAndCategory(context.Background(), user.ID, nil)
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, walletIDs[0], walletIDs[i])
		assert.Equal(t, categoryIDs[0], categoryIDs[i])
	}

	wallets, err := deps.Wallets.ListWallets(context.Background(), deps.DBExecutor, user.ID)
	require.NoError(t, err)
	assert.Len(t, wallets, 1)
	categories, err := deps.Categories.ListCategories(context.Background(), deps.DBExecutor, user.ID)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}
