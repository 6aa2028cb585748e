package report_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"stockadmin/internal/domain"
	apperror "stockadmin/internal/errors"
	"stockadmin/internal/report"
)

// MockFonte é uma implementação mock da interface Fonte.
type MockFonte struct {
	mock.Mock
}

func (m *MockFonte) ListarTodosResumos(ctx context.Context, params *domain.ListarProdutosParams) ([]domain.ProdutoResumo, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.ProdutoResumo), args.Error(1)
}

func (m *MockFonte) ConsultarLucro(ctx context.Context, codigo int64) (domain.LucroProduto, error) {
	args := m.Called(ctx, codigo)
	return args.Get(0).(domain.LucroProduto), args.Error(1)
}

func resumos() []domain.ProdutoResumo {
	return []domain.ProdutoResumo{
		{Codigo: 1, Descricao: "Notebook", TipoProduto: domain.TipoEletronico, ValorNoFornecedor: decimal.RequireFromString("3000"), EstoqueDisponivel: 9, QuantidadeTotalSaida: 3},
		{Codigo: 2, Descricao: "Cadeira", TipoProduto: domain.TipoMovel, ValorNoFornecedor: decimal.RequireFromString("150.5"), EstoqueDisponivel: 1200, QuantidadeTotalSaida: 0},
	}
}

func sampleRelatorio(t *testing.T) report.Relatorio {
	t.Helper()
	fonte := new(MockFonte)
	fonte.On("ListarTodosResumos", mock.Anything, mock.Anything).Return(resumos(), nil)
	fonte.On("ConsultarLucro", mock.Anything, int64(1)).Return(domain.LucroProduto{CodigoProduto: 1, LucroTotal: decimal.RequireFromString("4500.75")}, nil)
	fonte.On("ConsultarLucro", mock.Anything, int64(2)).Return(domain.LucroProduto{}, apperror.NewNotFoundError("sem vendas"))

	rel, err := report.Gerar(context.Background(), fonte, report.Filtro{})
	require.NoError(t, err)
	return rel
}

func TestGerar_TotalsAndNotFoundProfit(t *testing.T) {
	rel := sampleRelatorio(t)

	require.Len(t, rel.Linhas, 2)
	assert.Equal(t, 1209, rel.TotalEstoque)
	assert.Equal(t, 3, rel.TotalSaidas)
	assert.True(t, rel.LucroTotal.Equal(decimal.RequireFromString("4500.75")))
	assert.True(t, rel.Linhas[1].LucroTotal.IsZero())
}

func TestGerar_ForwardsFilter(t *testing.T) {
	fonte := new(MockFonte)
	fonte.On("ListarTodosResumos", mock.Anything, &domain.ListarProdutosParams{Sort: "codigo,asc", Tipo: domain.TipoMovel}).
		Return([]domain.ProdutoResumo{}, nil)

	rel, err := report.Gerar(context.Background(), fonte, report.Filtro{Tipo: domain.TipoMovel})
	require.NoError(t, err)
	assert.Empty(t, rel.Linhas)
	fonte.AssertExpectations(t)
}

func TestGerar_AbortsOnOtherErrors(t *testing.T) {
	fonte := new(MockFonte)
	fonte.On("ListarTodosResumos", mock.Anything, mock.Anything).Return(resumos(), nil)
	fonte.On("ConsultarLucro", mock.Anything, int64(1)).
		Return(domain.LucroProduto{}, apperror.NewTransportError("GET", errors.New("refused")))

	_, err := report.Gerar(context.Background(), fonte, report.Filtro{})
	require.Error(t, err)
	assert.True(t, apperror.IsTransport(err))
	fonte.AssertNotCalled(t, "ConsultarLucro", mock.Anything, int64(2))
}

func TestExportarXLSX(t *testing.T) {
	data, err := report.ExportarXLSX(sampleRelatorio(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Relatorio")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Código", rows[0][0])
	assert.Equal(t, "Notebook", rows[1][1])
	assert.Equal(t, "Total", rows[3][0])

	raw, err := f.GetCellValue("Relatorio", "E4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1209", raw)
}

func TestExportarPDF(t *testing.T) {
	data, err := report.ExportarPDF(sampleRelatorio(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportarCSV(t *testing.T) {
	data, err := report.ExportarCSV(sampleRelatorio(t))
	require.NoError(t, err)

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	require.NoError(t, err)
	assert.Equal(t,
		"Código;Descrição;Tipo;Custo;Estoque;Saídas;Lucro\n"+
			"1;Notebook;ELETRONICO;3000,00;9;3;4500,75\n"+
			"2;Cadeira;MOVEL;150,50;1200;0;0,00\n"+
			"Total;;;;1209;3;4500,75\n",
		string(decoded))
}

func TestFormatarMoeda(t *testing.T) {
	v := decimal.RequireFromString("1234.56")
	neg := decimal.RequireFromString("-10")
	zero := decimal.Zero

	assert.Equal(t, "R$ 1.234,56", report.FormatarMoeda(&v))
	assert.Equal(t, "-R$ 10,00", report.FormatarMoeda(&neg))
	assert.Equal(t, "R$ 0,00", report.FormatarMoeda(&zero))
	assert.Equal(t, "—", report.FormatarMoeda(nil))
}

func TestFormatarData(t *testing.T) {
	d := time.Date(2024, 5, 1, 9, 5, 3, 0, time.Local)
	assert.Equal(t, "01/05/2024 09:05:03", report.FormatarData(&d))
	assert.Equal(t, "—", report.FormatarData(nil))
	assert.Equal(t, "—", report.FormatarData(&time.Time{}))
}

func TestFormatarQuantidade(t *testing.T) {
	assert.Equal(t, "1.209", report.FormatarQuantidade(1209))
	assert.Equal(t, "7", report.FormatarQuantidade(7))
}
