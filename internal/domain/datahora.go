package domain

import (
	"bytes"
	"fmt"
	"time"
)

// LayoutDataHora é o formato de data/hora local trocado com o backend
// (sem fuso; e.g. 2024-05-01T10:30:00).
const LayoutDataHora = "2006-01-02T15:04:05"

var layoutsAceitos = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	LayoutDataHora,
	"2006-01-02",
}

// DataHora é um instante serializado no formato local do backend.
// Na leitura também aceita RFC 3339 e datas sem horário.
type DataHora struct {
	time.Time
}

// NovaDataHora trunca t para segundos.
func NovaDataHora(t time.Time) DataHora {
	return DataHora{Time: t.Truncate(time.Second)}
}

// ParseDataHora interpreta s em um dos formatos aceitos, no fuso local.
func ParseDataHora(s string) (DataHora, error) {
	for _, layout := range layoutsAceitos {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return DataHora{Time: t}, nil
		}
	}
	return DataHora{}, fmt.Errorf("data/hora inválida: %q", s)
}

func (d DataHora) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(LayoutDataHora) + `"`), nil
}

func (d *DataHora) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || len(data) < 2 {
		*d = DataHora{}
		return nil
	}
	parsed, err := ParseDataHora(string(bytes.Trim(data, `"`)))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
