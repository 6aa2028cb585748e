package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ExportarCSV gera o relatório separado por ponto e vírgula e codificado em
// Windows-1252, o formato que o Excel em pt-BR abre sem importação.
// Caracteres fora do Windows-1252 são substituídos pelo byte SUB (0x1A).
func ExportarCSV(rel Relatorio) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := transform.NewWriter(buf, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))

	w := csv.NewWriter(enc)
	w.Comma = ';'

	if err := w.Write(cabecalho); err != nil {
		return nil, fmt.Errorf("csv: cabeçalho: %w", err)
	}
	for _, l := range rel.Linhas {
		registro := []string{
			strconv.FormatInt(l.Codigo, 10),
			l.Descricao,
			string(l.TipoProduto),
			decimalBR(l.ValorNoFornecedor.StringFixed(2)),
			strconv.Itoa(l.EstoqueDisponivel),
			strconv.Itoa(l.QuantidadeTotalSaida),
			decimalBR(l.LucroTotal.StringFixed(2)),
		}
		if err := w.Write(registro); err != nil {
			return nil, fmt.Errorf("csv: produto %d: %w", l.Codigo, err)
		}
	}
	if err := w.Write([]string{"Total", "", "", "",
		strconv.Itoa(rel.TotalEstoque),
		strconv.Itoa(rel.TotalSaidas),
		decimalBR(rel.LucroTotal.StringFixed(2)),
	}); err != nil {
		return nil, fmt.Errorf("csv: totais: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("csv: codificação: %w", err)
	}
	return buf.Bytes(), nil
}

// decimalBR troca o ponto decimal por vírgula, sem separador de milhar.
func decimalBR(s string) string {
	return string(bytes.Replace([]byte(s), []byte("."), []byte(","), 1))
}
