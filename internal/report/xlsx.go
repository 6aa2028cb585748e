package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const planilha = "Relatorio"

// ExportarXLSX gera uma planilha com uma linha por produto e a linha de totais.
// Valores monetários são gravados como números, com formato de moeda.
func ExportarXLSX(rel Relatorio) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), planilha); err != nil {
		return nil, fmt.Errorf("xlsx: renomear planilha: %w", err)
	}

	header := make([]interface{}, len(cabecalho))
	for i, h := range cabecalho {
		header[i] = h
	}
	if err := f.SetSheetRow(planilha, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabeçalho: %w", err)
	}

	row := 2
	for _, l := range rel.Linhas {
		excelRow := []interface{}{
			l.Codigo,
			l.Descricao,
			string(l.TipoProduto),
			l.ValorNoFornecedor.InexactFloat64(),
			l.EstoqueDisponivel,
			l.QuantidadeTotalSaida,
			l.LucroTotal.InexactFloat64(),
		}
		if err := setRow(f, row, excelRow); err != nil {
			return nil, err
		}
		row++
	}

	totais := []interface{}{"Total", "", "", "", rel.TotalEstoque, rel.TotalSaidas, rel.LucroTotal.InexactFloat64()}
	if err := setRow(f, row, totais); err != nil {
		return nil, err
	}

	if err := estilizar(f, row); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: gravar arquivo: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: célula da linha %d: %w", row, err)
	}
	if err := f.SetSheetRow(planilha, cell, &values); err != nil {
		return fmt.Errorf("xlsx: linha %d: %w", row, err)
	}
	return nil
}

// estilizar aplica negrito ao cabeçalho e aos totais e o formato R$ às colunas D e G.
func estilizar(f *excelize.File, ultima int) error {
	negrito, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}
	formato := `"R$" #,##0.00`
	moeda, err := f.NewStyle(&excelize.Style{CustomNumFmt: &formato})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := f.SetCellStyle(planilha, "A1", "G1", negrito); err != nil {
		return err
	}
	if err := f.SetCellStyle(planilha, fmt.Sprintf("A%d", ultima), fmt.Sprintf("G%d", ultima), negrito); err != nil {
		return err
	}
	if ultima > 2 {
		if err := f.SetCellStyle(planilha, "D2", fmt.Sprintf("D%d", ultima-1), moeda); err != nil {
			return err
		}
		if err := f.SetCellStyle(planilha, "G2", fmt.Sprintf("G%d", ultima-1), moeda); err != nil {
			return err
		}
	}
	return f.SetColWidth(planilha, "B", "B", 40)
}
