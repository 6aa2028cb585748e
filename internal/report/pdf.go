package report

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	corPrimaria = &props.Color{Red: 0, Green: 70, Blue: 127}
	corCinza    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// larguras das colunas (grade de 12) na ordem de cabecalho.
var larguras = []int{1, 4, 2, 1, 1, 1, 2}

// ExportarPDF gera o relatório em A4 e devolve os bytes do documento.
func ExportarPDF(rel Relatorio) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(rel.titulo(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(tituloRow(rel))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.5}))
	m.AddRows(cabecalhoRow())
	for _, r := range linhaRows(rel.Linhas) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.3}))
	m.AddRows(totaisRow(rel))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func tituloRow(rel Relatorio) core.Row {
	gerado := rel.GeradoEm
	return row.New(14).Add(
		col.New(8).Add(
			text.New(rel.titulo(), props.Text{Style: fontstyle.Bold, Size: 13, Color: corPrimaria, Top: 1}),
		),
		col.New(4).Add(
			text.New("Gerado em "+FormatarData(&gerado), props.Text{Size: 8, Align: align.Right, Top: 3, Color: corCinza}),
		),
	)
}

func cabecalhoRow() core.Row {
	cols := make([]core.Col, 0, len(cabecalho))
	for i, h := range cabecalho {
		cols = append(cols, col.New(larguras[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alinhamento(i), Color: corPrimaria, Top: 2,
		})))
	}
	return row.New(8).Add(cols...)
}

func linhaRows(linhas []Linha) []core.Row {
	result := make([]core.Row, 0, len(linhas))
	for _, l := range linhas {
		custo := l.ValorNoFornecedor
		lucro := l.LucroTotal
		valores := []string{
			strconv.FormatInt(l.Codigo, 10),
			l.Descricao,
			string(l.TipoProduto),
			FormatarMoeda(&custo),
			FormatarQuantidade(l.EstoqueDisponivel),
			FormatarQuantidade(l.QuantidadeTotalSaida),
			FormatarMoeda(&lucro),
		}
		result = append(result, celulas(7, valores, fontstyle.Normal))
	}
	return result
}

func totaisRow(rel Relatorio) core.Row {
	lucro := rel.LucroTotal
	return celulas(8, []string{
		"", "Total", "", "",
		FormatarQuantidade(rel.TotalEstoque),
		FormatarQuantidade(rel.TotalSaidas),
		FormatarMoeda(&lucro),
	}, fontstyle.Bold)
}

func celulas(altura float64, valores []string, estilo fontstyle.Type) core.Row {
	cols := make([]core.Col, 0, len(valores))
	for i, v := range valores {
		cols = append(cols, col.New(larguras[i]).Add(text.New(v, props.Text{
			Style: estilo, Size: 8, Align: alinhamento(i), Top: 1,
		})))
	}
	return row.New(altura).Add(cols...)
}

// alinhamento: descrição e tipo à esquerda, números à direita.
func alinhamento(coluna int) align.Type {
	switch coluna {
	case 1, 2:
		return align.Left
	case 0:
		return align.Center
	}
	return align.Right
}
