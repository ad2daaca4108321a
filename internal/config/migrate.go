package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xavierca1/ligue-whatsapp/internal/entity"
	"github.com/xavierca1/ligue-whatsapp/internal/validation"
)

// migrationStep transforma a árvore persistida de From para To. Todo passo
// precisa ser idempotente: reaplicar sobre uma árvore já migrada não pode
// mudar o resultado.
type migrationStep struct {
	From  string
	To    string
	Apply func(tree map[string]any) error
}

// migrations em ordem crescente de versão. A cadeia precisa cobrir o
// intervalo pedido sem buracos.
var migrations = []migrationStep{
	{
		// 1.0.x guardava só a cor do widget; text_color e o bloco de rate
		// limit entraram em 1.1.0.
		From: "1.0.0",
		To:   "1.1.0",
		Apply: func(tree map[string]any) error {
			widget := subtree(tree, "widget_settings")
			if _, ok := widget["text_color"]; !ok {
				widget["text_color"] = "#ffffff"
			}
			if _, ok := tree["rate_limit_settings"]; !ok {
				defaults := entity.DefaultSettings().ToMap()
				tree["rate_limit_settings"] = defaults["rate_limit_settings"]
			}
			return nil
		},
	},
	{
		// 1.2.0 introduziu eventos de notificação configuráveis e o bloco
		// advanced_settings separado.
		From: "1.1.0",
		To:   "1.2.0",
		Apply: func(tree map[string]any) error {
			notif := subtree(tree, "notification_settings")
			if _, ok := notif["notification_events"]; !ok {
				notif["notification_events"] = map[string]any{
					"message_sent":  true,
					"message_error": true,
				}
			}
			if _, ok := tree["advanced_settings"]; !ok {
				defaults := entity.DefaultSettings().ToMap()
				tree["advanced_settings"] = defaults["advanced_settings"]
			}
			return nil
		},
	},
}

// Migrate aplica os passos versionados que cobrem [fromVersion, toVersion],
// em ordem crescente. Qualquer passo falhando aborta a migração inteira: a
// versão só é gravada depois de todos os passos passarem.
func (s *Store) Migrate(ctx context.Context, fromVersion, toVersion string) bool {
	if fromVersion == toVersion {
		return true
	}
	if compareVersions(fromVersion, toVersion) > 0 {
		s.recordErrors(validation.Result{"schema_version": {"downgrade is not supported"}})
		return false
	}

	raw, err := s.options.Get(ctx, OptionKey, "")
	if err != nil {
		log.Printf("❌ config: falha lendo option store na migração: %v", err)
		return false
	}

	tree := map[string]any{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &tree); err != nil {
			log.Printf("❌ config: opção persistida corrompida na migração: %v", err)
			return false
		}
	}

	current := fromVersion
	for _, step := range migrations {
		if compareVersions(step.To, current) <= 0 {
			continue
		}
		if compareVersions(step.To, toVersion) > 0 {
			break
		}
		if step.From != current {
			s.recordErrors(validation.Result{"schema_version": {
				fmt.Sprintf("no migration step from version %s", current),
			}})
			return false
		}

		if err := step.Apply(tree); err != nil {
			log.Printf("❌ config: passo de migração %s→%s falhou: %v", step.From, step.To, err)
			s.recordErrors(validation.Result{"schema_version": {
				fmt.Sprintf("migration %s to %s failed", step.From, step.To),
			}})
			return false
		}
		current = step.To
	}

	if current != toVersion {
		s.recordErrors(validation.Result{"schema_version": {
			fmt.Sprintf("migration chain does not reach version %s", toVersion),
		}})
		return false
	}

	settings := entity.SettingsFromMap(tree)
	settings.Version = toVersion
	return s.persistSettings(ctx, settings)
}

// subtree devolve (criando se preciso) o mapa aninhado de uma chave.
func subtree(tree map[string]any, key string) map[string]any {
	if m, ok := tree[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	tree[key] = m
	return m
}

// compareVersions compara "x.y.z" numericamente: -1, 0 ou 1.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var ai, bi int
		if i < len(as) {
			ai, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bi, _ = strconv.Atoi(bs[i])
		}
		if ai != bi {
			if ai < bi {
				return -1
			}
			return 1
		}
	}
	return 0
}
