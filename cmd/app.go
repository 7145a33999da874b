package cmd

import (
	"context"
	"fmt"
	"log"

	"lunchero/internal/api"
	"lunchero/internal/events"
	"lunchero/internal/models"
	"lunchero/internal/repositories/postgres"
	"lunchero/internal/store"
	"lunchero/internal/uistate"
)

// app bundles the three stores and whatever needs closing at exit.
type app struct {
	cfg      *models.Config
	lunches  *store.LunchStore
	orders   *store.OrderStore
	expenses *store.ExpenseStore
	closers  []func()
}

func newApp(ctx context.Context, cfg *models.Config) (*app, error) {
	a := &app{cfg: cfg}

	var lunchRemote, orderRemote, expenseRemote store.Remote
	switch cfg.Backend {
	case "api":
		client := api.New(cfg.APIBaseURL)
		lunchRemote = client.Lunches()
		orderRemote = client.Orders()
		expenseRemote = client.Expenses()
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		lunchRemote = postgres.NewLunchRepository(pool)
		orderRemote = postgres.NewOrderRepository(pool)
		expenseRemote = postgres.NewExpenseRepository(pool)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}

	state := uistate.Open(cfg.StateFile)
	a.lunches = store.NewLunchStore(lunchRemote, state)
	a.orders = store.NewOrderStore(orderRemote, state)
	a.expenses = store.NewExpenseStore(expenseRemote, state)

	var sink events.Sink = events.ConsoleSink{}
	if cfg.KafkaEnabled {
		kafka, err := events.NewKafkaSink(cfg.KafkaBrokerList, cfg.KafkaTopicPrefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := kafka.Close(); err != nil {
				log.Printf("Error closing Kafka producer: %v", err)
			}
		})
		sink = kafka
	}
	bridge := func(ev models.ChangeEvent) {
		if err := sink.Write(ev); err != nil {
			log.Printf("Failed to publish change event: %v", err)
		}
	}
	a.lunches.Subscribe(bridge)
	a.orders.Subscribe(bridge)
	a.expenses.Subscribe(bridge)

	// rehydrate UI state first, then refetch data, like the web client does
	a.lunches.Rehydrate()
	a.orders.Rehydrate()
	a.expenses.Rehydrate()

	return a, nil
}

func (a *app) close() {
	for _, fn := range a.closers {
		fn()
	}
}
