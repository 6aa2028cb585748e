// Package query converte filtros e paginação em parâmetros de URL.
//
// Valores ausentes (nil, ponteiro nil) ou string vazia nunca são enviados:
// assim o backend aplica os próprios padrões em vez de receber um filtro vazio.
package query

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/spf13/cast"
)

// Build converte params em url.Values, omitindo chaves sem valor.
// Números são formatados em base 10 e enums pela sua tag (fmt.Stringer).
// Não há condição de erro: tipos não suportados usam a forma %v.
func Build(params map[string]any) url.Values {
	values := url.Values{}
	for key, value := range params {
		s, ok := toString(value)
		if !ok || s == "" {
			continue
		}
		values.Set(key, s)
	}
	return values
}

// Merge sobrepõe params aos defaults do recurso. Um valor ausente em params
// mantém o default; um valor presente (mesmo zero) o substitui.
func Merge(defaults, params map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(params))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range params {
		if isAbsent(v) {
			if _, ok := merged[k]; ok {
				continue
			}
		}
		merged[k] = v
	}
	return merged
}

// toString devolve a forma canônica de value; ok=false quando o valor está ausente.
func toString(value any) (string, bool) {
	if isAbsent(value) {
		return "", false
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprintf("%v", reflect.Indirect(reflect.ValueOf(value)).Interface()), true
	}
	return s, true
}

// isAbsent trata nil, ponteiros nil e string vazia como ausência de valor.
func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return true
		}
	}
	if v.Kind() == reflect.Pointer {
		return isAbsent(v.Elem().Interface())
	}
	return v.Kind() == reflect.String && v.Len() == 0
}
