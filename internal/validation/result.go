package validation

// Result mapeia caminho de campo (com ponto para aninhamento, ex.
// "business_hours.monday.open") para a lista ordenada de erros legíveis.
// Mapa vazio significa válido. É o retorno uniforme de todos os validadores.
type Result map[string][]string

func (r Result) Valid() bool {
	return len(r) == 0
}

func (r Result) Add(field, message string) {
	r[field] = append(r[field], message)
}

// Merge agrega os erros de outro Result, preservando a ordem por campo.
func (r Result) Merge(other Result) {
	for field, msgs := range other {
		r[field] = append(r[field], msgs...)
	}
}

// First devolve o primeiro erro de um campo, ou "" se não houver.
func (r Result) First(field string) string {
	if msgs, ok := r[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
