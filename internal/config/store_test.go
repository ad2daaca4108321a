package config

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/cache"
	"github.com/xavierca1/ligue-whatsapp/internal/validation"
)

type fakeOptions struct {
	mu      sync.Mutex
	data    map[string]string
	sets    int
	failSet bool
}

func newFakeOptions() *fakeOptions {
	return &fakeOptions{data: map[string]string{}}
}

func (f *fakeOptions) Get(_ context.Context, key, fallback string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return fallback, nil
}

func (f *fakeOptions) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return errors.New("disco cheio")
	}
	f.sets++
	f.data[key] = value
	return nil
}

func (f *fakeOptions) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

type fakeSink struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeSink) Publish(_ context.Context, name string, _ map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, name)
	return nil
}

func (f *fakeSink) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func newTestStore() (*Store, *fakeOptions, *fakeSink) {
	options := newFakeOptions()
	sink := &fakeSink{}
	store := NewStore(options, cache.NewMemory(), validation.New(), sink)
	return store, options, sink
}

func TestGetAllReturnsFullyPopulatedDefaults(t *testing.T) {
	store, _, _ := newTestStore()

	settings := store.GetAll(context.Background())

	assert.Equal(t, entity.SchemaVersion, settings.Version)
	assert.Len(t, settings.BusinessHours, 7)
	assert.NotEmpty(t, settings.Templates["default"])
	assert.Equal(t, 100, settings.RateLimit.MaxRequestsPerHour)
	assert.Equal(t, "bottom-right", settings.Widget.Position)
}

func TestSetValidatesBeforeTouchingStorage(t *testing.T) {
	store, options, _ := newTestStore()
	ctx := context.Background()

	ok := store.Set(ctx, "phone_number", "nao-e-telefone")

	assert.False(t, ok)
	assert.Equal(t, 0, options.sets)
	assert.NotEmpty(t, store.LastErrors()["phone_number"])
}

func TestSetUnknownKeyFails(t *testing.T) {
	store, options, _ := newTestStore()

	assert.False(t, store.Set(context.Background(), "coisa_inventada", 1))
	assert.Equal(t, 0, options.sets)
	assert.Equal(t, "unknown setting", store.LastErrors().First("coisa_inventada"))
}

func TestSetPersistsAndIsVisibleToReads(t *testing.T) {
	store, options, _ := newTestStore()
	ctx := context.Background()

	assert.True(t, store.Set(ctx, "business_name", "Ligue Saúde"))
	assert.Equal(t, 1, options.sets)

	// read-your-writes: a leitura seguinte enxerga o valor novo
	assert.Equal(t, "Ligue Saúde", store.GetAll(ctx).BusinessName)
	assert.Equal(t, "Ligue Saúde", store.Get(ctx, "business_name", ""))

	assert.True(t, store.Set(ctx, "widget_settings.color", "#128C7E"))
	assert.Equal(t, "#128C7E", store.GetAll(ctx).Widget.Color)
	// o resto do widget continua populado
	assert.Equal(t, "bottom-right", store.GetAll(ctx).Widget.Position)
}

func TestSetAllInvalidHoursFails(t *testing.T) {
	store, options, _ := newTestStore()

	settings := entity.DefaultSettings()
	settings.BusinessHours["monday"] = entity.DayHours{Open: "09:00", Close: "09:00", Enabled: true}

	assert.False(t, store.SetAll(context.Background(), settings))
	assert.Equal(t, 0, options.sets)
	assert.NotEmpty(t, store.LastErrors()["business_hours.monday"])
}

func TestSetAllPublishesConfigUpdated(t *testing.T) {
	store, _, sink := newTestStore()

	settings := entity.DefaultSettings()
	settings.BusinessName = "Ligue"
	settings.PhoneNumber = "+5511999999999"

	assert.True(t, store.SetAll(context.Background(), settings))
	assert.Contains(t, sink.names(), "config_updated")
}

func TestSetAllSurfacesStorageFailure(t *testing.T) {
	store, options, _ := newTestStore()
	options.failSet = true

	assert.False(t, store.SetAll(context.Background(), entity.DefaultSettings()))
	assert.NotEmpty(t, store.LastErrors()["_storage"])
}

func TestClearCacheForcesReloadFromDurable(t *testing.T) {
	store, options, _ := newTestStore()
	ctx := context.Background()

	_ = store.GetAll(ctx) // popula snapshot + cache externo

	// escreve por fora do Store, como outro processo faria
	fresh := entity.DefaultSettings()
	fresh.BusinessName = "Outro Processo"
	other := NewStore(options, cache.NewMemory(), validation.New(), nil)
	assert.True(t, other.SetAll(ctx, fresh))

	assert.True(t, store.ClearCache(ctx))
	assert.Equal(t, "Outro Processo", store.GetAll(ctx).BusinessName)
}

func TestExportStripsAPIKey(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	assert.True(t, store.Set(ctx, "api_key", "EAAGsegredo123"))

	payload := store.Export(ctx)
	_, hasKey := payload.Config["api_key"]

	assert.False(t, hasKey)
	assert.Equal(t, entity.SchemaVersion, payload.Version)
	assert.NotEmpty(t, payload.Config["business_hours"])
}

func TestImportRoundTrip(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	original := entity.DefaultSettings()
	original.APIKey = "EAAGsegredo123"
	original.BusinessName = "Ligue Saúde"
	original.PhoneNumber = "+5511999999999"
	assert.True(t, store.SetAll(ctx, original))

	payload := store.Export(ctx)
	// o segredo foi removido; re-informa antes de importar
	payload.Config["api_key"] = "EAAGsegredo123"

	fresh, _, _ := newTestStore()
	assert.True(t, fresh.Import(ctx, payload))

	got := fresh.GetAll(ctx)
	assert.Equal(t, original.APIKey, got.APIKey)
	assert.Equal(t, original.BusinessName, got.BusinessName)
	assert.Equal(t, original.PhoneNumber, got.PhoneNumber)
	assert.Equal(t, original.BusinessHours, got.BusinessHours)
	assert.Equal(t, original.Templates, got.Templates)
}

func TestImportRejectsWrongShape(t *testing.T) {
	store, options, _ := newTestStore()

	payload := ExportPayload{Version: entity.SchemaVersion, Config: map[string]any{
		"business_name": "Ligue",
	}}

	assert.False(t, store.Import(context.Background(), payload))
	assert.Equal(t, 0, options.sets)
	assert.NotEmpty(t, store.LastErrors()["business_hours"])
}

func TestMigrateAppliesChain(t *testing.T) {
	store, options, _ := newTestStore()
	ctx := context.Background()

	// instala uma árvore 1.0.0 crua, sem os blocos novos
	options.data[OptionKey] = `{"business_name":"Ligue","schema_version":"1.0.0","widget_settings":{"color":"#25D366"}}`

	assert.True(t, store.Migrate(ctx, "1.0.0", "1.2.0"))

	got := store.GetAll(ctx)
	assert.Equal(t, "1.2.0", got.Version)
	assert.Equal(t, "Ligue", got.BusinessName)
	assert.Equal(t, "#ffffff", got.Widget.TextColor)
	assert.True(t, got.RateLimit.Enabled)
	assert.NotEmpty(t, got.Notifications.NotificationEvents)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store, options, _ := newTestStore()
	ctx := context.Background()

	options.data[OptionKey] = `{"business_name":"Ligue","schema_version":"1.0.0"}`

	assert.True(t, store.Migrate(ctx, "1.0.0", "1.1.0"))
	after1 := options.data[OptionKey]

	// reaplica o mesmo passo: estado final idêntico
	assert.True(t, store.Migrate(ctx, "1.0.0", "1.1.0"))
	assert.JSONEq(t, after1, options.data[OptionKey])
}

func TestMigrateRejectsGapsAndDowngrade(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()

	assert.False(t, store.Migrate(ctx, "1.2.0", "1.0.0"))
	assert.False(t, store.Migrate(ctx, "0.9.0", "1.2.0"))
	assert.False(t, store.Migrate(ctx, "1.0.0", "9.9.9"))
	assert.True(t, store.Migrate(ctx, "1.2.0", "1.2.0"))
}
