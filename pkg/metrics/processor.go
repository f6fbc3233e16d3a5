package metrics

import (
	"fmt"
)

// Processor resolve IDs de métricas e repassa os valores ao Provider.
type Processor struct {
	definitions map[string]MetricDefinition
	provider    Provider
	tags        []string
}

// NewProcessor cria um processador com as definições padrão. tags são
// anexadas a todas as métricas.
func NewProcessor(provider Provider, tags []string) *Processor {
	return &Processor{
		definitions: DefaultDefinitions,
		provider:    provider,
		tags:        tags,
	}
}

// Emit envia um valor para a métrica identificada por id.
func (p *Processor) Emit(id string, value float64, tags ...string) error {
	def, exists := p.definitions[id]
	if !exists {
		return fmt.Errorf("métrica não definida: %s", id)
	}

	finalTags := make([]string, 0, len(p.tags)+len(tags))
	finalTags = append(finalTags, p.tags...)
	finalTags = append(finalTags, tags...)

	switch def.Type {
	case TypeCount:
		return p.provider.Count(def.Name, value, finalTags)
	case TypeGauge:
		return p.provider.Gauge(def.Name, value, finalTags)
	case TypeHistogram:
		return p.provider.Histogram(def.Name, value, finalTags)
	default:
		return fmt.Errorf("tipo de métrica desconhecido: %s", def.Type)
	}
}
