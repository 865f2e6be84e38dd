package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/Nexus/internal/account"
	"github.com/mamadbah2/Nexus/internal/api"
	"github.com/mamadbah2/Nexus/internal/cart"
	"github.com/mamadbah2/Nexus/internal/catalog"
	"github.com/mamadbah2/Nexus/internal/config"
	"github.com/mamadbah2/Nexus/internal/details"
	"github.com/mamadbah2/Nexus/internal/logger"
	"github.com/mamadbah2/Nexus/internal/notify"
	"github.com/mamadbah2/Nexus/internal/order"
	"github.com/mamadbah2/Nexus/internal/product"
	"github.com/mamadbah2/Nexus/internal/search"
	"github.com/mamadbah2/Nexus/internal/session"
	"github.com/mamadbah2/Nexus/internal/user"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	sess, err := session.FromToken(cfg.AccessToken)
	if err != nil {
		logger.L().Fatal("invalid access token", zap.Error(err))
	}

	apiClient := api.NewClient(cfg.BackendURL, sess.Token, cfg.HTTPTimeout)
	notifier := notify.NewZapNotifier()

	productClient := product.NewClient(apiClient)
	cartClient := cart.NewClient(apiClient)
	orderClient := order.NewClient(apiClient)
	userClient := user.NewClient(apiClient)

	productDetails := details.NewCache(func(ctx context.Context, id string) (product.Product, error) {
		p, err := productClient.Get(ctx, id)
		if err != nil {
			return product.Product{}, err
		}
		return *p, nil
	}, cfg.CacheSize, cfg.CacheTTL)

	customerDetails := details.NewCache(func(ctx context.Context, id string) (user.Profile, error) {
		u, err := userClient.Get(ctx, id)
		if err != nil {
			return user.Profile{}, err
		}
		return *u, nil
	}, cfg.CacheSize, cfg.CacheTTL)

	cartSvc := cart.NewService(cartClient, sess)

	catalogView := catalog.NewView(productClient, cartSvc, notifier)
	cartView := cart.NewView(cartSvc, orderClient, productDetails, notifier)
	historyView := order.NewHistoryView(orderClient, sess, productDetails, notifier)
	accountView := account.NewView(userClient, orderClient, sess, notifier)

	ctx := session.WithSession(context.Background(), sess)

	searchBox := search.NewBox(productClient, 0,
		func(suggestions []string) {
			logger.L().Debug("suggestions updated", zap.Strings("suggestions", suggestions))
		},
		func(term string) {
			if err := catalogView.Search(ctx, term); err != nil {
				logger.L().Warn("search failed", zap.String("term", term), zap.Error(err))
			}
		},
	)
	defer searchBox.Close()

	loadErr := catalogView.Load(ctx)
	if cfg.PageSize != catalogView.Pagination().PageSize {
		loadErr = catalogView.SetPageSize(ctx, cfg.PageSize)
	}
	if loadErr != nil {
		logger.L().Fatal("failed to load catalog", zap.Error(loadErr))
	}
	pg := catalogView.Pagination()
	logger.L().Info("catalog loaded",
		zap.Int64("total_products", pg.TotalElements),
		zap.Int("pages", pg.TotalPages),
		zap.Int("page_size", pg.PageSize),
	)

	cartView.Load(ctx)
	if c := cartView.Cart(); c != nil {
		logger.L().Info("cart loaded",
			zap.String("cart_id", c.ID),
			zap.Int("items", len(c.Items)),
			zap.Float64("total", c.Total),
		)
	} else {
		logger.L().Info("no open cart")
	}

	if err := historyView.Load(ctx); err == nil {
		logger.L().Info("orders loaded", zap.Int("count", len(historyView.Orders())))
	}

	if err := accountView.Load(ctx); err == nil {
		if p := accountView.Profile(); p != nil {
			logger.L().Info("profile loaded", zap.String("name", p.Name), zap.String("role", p.Role))
		}
	}

	if sess.IsSeller() {
		sellerView := order.NewSellerView(orderClient, sess, productDetails, customerDetails, notifier)
		if err := sellerView.Load(ctx); err == nil {
			logger.L().Info("seller orders loaded",
				zap.Int("count", len(sellerView.Orders())),
				zap.Float64("revenue", sellerView.TotalRevenue()),
				zap.Int("pending", sellerView.PendingCount()),
			)
		}
	}
}
