package config

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/infra/cache"
	"github.com/xavierca1/ligue-whatsapp/internal/validation"
)

// OptionKey é a chave única da configuração no option store durável.
const OptionKey = "wa_whatsapp_settings"

// OptionStore é o contrato do armazenamento durável chave/valor. Arquivo,
// tabela relacional ou serviço gerenciado, tanto faz para o Store.
type OptionStore interface {
	Get(ctx context.Context, key, fallback string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type EventSink interface {
	Publish(ctx context.Context, name string, payload map[string]any) error
}

// Store é a configuração em camadas: snapshot em processo → cache externo
// (TTL) → option store durável, sempre mergeada sobre os defaults embutidos.
// Falha de validação volta como false + LastErrors; falha de I/O é logada e
// vira false. Nada de panic atravessando a API pública.
type Store struct {
	options   OptionStore
	cache     cache.Cache
	validator *validation.Validator
	events    EventSink

	mu         sync.RWMutex
	snapshot   *entity.Settings
	lastErrors validation.Result
}

func NewStore(options OptionStore, c cache.Cache, v *validation.Validator, events EventSink) *Store {
	return &Store{
		options:   options,
		cache:     c,
		validator: v,
		events:    events,
	}
}

// cacheKey é derivada do conteúdo (chave da opção + versão do schema):
// migrar o schema invalida naturalmente o cache externo antigo.
func (s *Store) cacheKey() string {
	sum := sha256.Sum256([]byte(OptionKey + "|" + entity.SchemaVersion))
	return "config:" + hex.EncodeToString(sum[:8])
}

// GetAll devolve o snapshot completo. Ordem: snapshot em processo, cache
// externo, storage durável; no miss reconstrói e popula as duas camadas.
func (s *Store) GetAll(ctx context.Context) entity.Settings {
	s.mu.RLock()
	if s.snapshot != nil {
		snap := s.snapshot.Clone()
		s.mu.RUnlock()
		return snap
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil {
		return s.snapshot.Clone()
	}

	settings := s.load(ctx)
	s.snapshot = &settings
	return settings.Clone()
}

// load lê cache externo e storage durável. Chamar com s.mu travado.
func (s *Store) load(ctx context.Context) entity.Settings {
	if raw, ok, err := s.cache.Get(ctx, s.cacheKey()); err != nil {
		log.Printf("⚠️ config: cache indisponível: %v", err)
	} else if ok {
		var tree map[string]any
		if err := json.Unmarshal([]byte(raw), &tree); err == nil {
			return entity.SettingsFromMap(tree)
		}
		log.Printf("⚠️ config: cache com payload inválido, recarregando")
	}

	raw, err := s.options.Get(ctx, OptionKey, "")
	if err != nil {
		log.Printf("❌ config: falha lendo option store: %v", err)
		return entity.DefaultSettings()
	}

	var tree map[string]any
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			log.Printf("❌ config: opção persistida corrompida: %v", err)
			tree = nil
		}
	}

	settings := entity.SettingsFromMap(tree)

	if blob, err := json.Marshal(settings); err == nil {
		ttl := time.Hour
		if settings.Advanced.CacheDuration > 0 {
			ttl = time.Duration(settings.Advanced.CacheDuration) * time.Second
		}
		if err := s.cache.Set(ctx, s.cacheKey(), string(blob), ttl); err != nil {
			log.Printf("⚠️ config: falha populando cache: %v", err)
		}
	}

	return settings
}

// Get resolve um valor por caminho (com ponto para aninhamento) sobre o
// snapshot completo, com fallback.
func (s *Store) Get(ctx context.Context, key string, fallback any) any {
	tree := s.GetAll(ctx).ToMap()
	if value, ok := validation.Lookup(tree, key); ok {
		return value
	}
	return fallback
}

// Set valida e persiste um único campo. Em falha de validação devolve false
// sem tocar no storage; os erros ficam em LastErrors.
func (s *Store) Set(ctx context.Context, key string, value any) bool {
	schema := SettingsSchema()
	rule, known := schema[key]
	if !known {
		s.recordErrors(validation.Result{key: {"unknown setting"}})
		return false
	}

	tree := treeFromPath(key, value)
	if errs := s.validator.ValidateConfig(validation.Schema{key: rule}, tree); !errs.Valid() {
		s.recordErrors(errs)
		return false
	}

	current := s.GetAll(ctx).ToMap()
	setPath(current, key, value)

	return s.persist(ctx, current)
}

// SetAll valida a estrutura inteira e troca o snapshot atomicamente.
func (s *Store) SetAll(ctx context.Context, settings entity.Settings) bool {
	errs := s.validator.ValidateConfig(SettingsSchema(), settings.ToMap())
	errs.Merge(s.validator.ValidateBusinessHours(settings.BusinessHours))
	if !errs.Valid() {
		s.recordErrors(errs)
		return false
	}

	return s.persist(ctx, settings.ToMap())
}

// persist grava no storage durável, invalida as duas camadas de cache e
// notifica os assinantes. Invalidar (não sobrescrever) garante que a próxima
// leitura em qualquer goroutine veja o que foi gravado.
func (s *Store) persist(ctx context.Context, tree map[string]any) bool {
	settings := entity.SettingsFromMap(tree)
	settings.Version = entity.SchemaVersion
	return s.persistSettings(ctx, settings)
}

func (s *Store) persistSettings(ctx context.Context, settings entity.Settings) bool {
	blob, err := json.Marshal(settings)
	if err != nil {
		log.Printf("❌ config: falha serializando configuração: %v", err)
		s.recordErrors(validation.Result{"_storage": {"could not serialize configuration"}})
		return false
	}

	if err := s.options.Set(ctx, OptionKey, string(blob)); err != nil {
		log.Printf("❌ config: falha gravando option store: %v", err)
		s.recordErrors(validation.Result{"_storage": {"could not persist configuration"}})
		return false
	}

	if err := s.cache.Delete(ctx, s.cacheKey()); err != nil {
		log.Printf("⚠️ config: falha invalidando cache externo: %v", err)
	}

	s.mu.Lock()
	s.snapshot = nil
	s.lastErrors = nil
	s.mu.Unlock()

	s.publish(ctx, "config_updated", map[string]any{
		"schema_version": settings.Version,
		"updated_at":     time.Now().UTC().Format(time.RFC3339),
	})

	return true
}

// LastErrors devolve os erros da última operação de escrita que falhou.
func (s *Store) LastErrors() validation.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := validation.Result{}
	out.Merge(s.lastErrors)
	return out
}

// ClearCache derruba as duas camadas de cache; a próxima leitura reconstrói
// do storage durável.
func (s *Store) ClearCache(ctx context.Context) bool {
	if err := s.cache.Delete(ctx, s.cacheKey()); err != nil {
		log.Printf("⚠️ config: falha limpando cache externo: %v", err)
		return false
	}

	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
	return true
}

// ResetToDefaults volta tudo para a configuração embutida.
func (s *Store) ResetToDefaults(ctx context.Context) bool {
	return s.persist(ctx, entity.DefaultSettings().ToMap())
}

func (s *Store) recordErrors(errs validation.Result) {
	s.mu.Lock()
	s.lastErrors = errs
	s.mu.Unlock()
}

func (s *Store) publish(ctx context.Context, name string, payload map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, name, payload); err != nil {
		log.Printf("⚠️ config: falha publicando %s: %v", name, err)
	}
}

// treeFromPath monta a árvore aninhada mínima para validar {key: value}.
func treeFromPath(path string, value any) map[string]any {
	parts := strings.Split(path, ".")
	tree := map[string]any{}
	current := tree
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = normalizeValue(value)
			break
		}
		next := map[string]any{}
		current[part] = next
		current = next
	}
	return tree
}

// setPath escreve um valor em um caminho da árvore, criando os níveis que
// faltarem.
func setPath(tree map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := tree
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = normalizeValue(value)
			return
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
}

// normalizeValue passa valores tipados (structs, maps tipados) pela forma
// JSON genérica, a mesma que o resto da árvore usa.
func normalizeValue(value any) any {
	switch value.(type) {
	case nil, string, bool, float64, int, int64, map[string]any, []any:
		return value
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return value
	}
	return out
}
