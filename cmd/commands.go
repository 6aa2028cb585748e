package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockadmin/internal/domain"
	"stockadmin/internal/report"
)

// usageError indica argumentos inválidos (status 2).
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// commandError associa ao erro do cliente a mensagem exibida quando o backend
// não informa uma, e uma dica opcional para conflitos.
type commandError struct {
	err      error
	fallback string
	dica     string
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

func falha(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return &commandError{err: err, fallback: fallback}
}

// optionalInt é uma flag inteira que distingue "não informada" de zero.
type optionalInt struct{ v *int }

func (o *optionalInt) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.Itoa(*o.v)
}

func (o *optionalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	o.v = &n
	return nil
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("recurso não informado")
	}

	switch args[0] {
	case "produtos":
		return a.produtosCmd(ctx, args[1:])
	case "movimentos":
		return a.movimentosCmd(ctx, args[1:])
	case "relatorio":
		return a.relatorioCmd(ctx, args[1:])
	case "-h", "--help", "help":
		fmt.Fprintln(a.stdout, uso)
		return nil
	}
	return usagef("recurso desconhecido: %q", args[0])
}

func newFlagSet(nome string) *flag.FlagSet {
	fs := flag.NewFlagSet(nome, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			var b strings.Builder
			fs.SetOutput(&b)
			fs.PrintDefaults()
			return usagef("flags de %s:\n%s", fs.Name(), b.String())
		}
		return usagef("%s: %v", fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return usagef("%s: argumentos inesperados: %v", fs.Name(), fs.Args())
	}
	return nil
}

func (a *app) imprimir(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- produtos ---

func (a *app) produtosCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("ação de produtos não informada")
	}
	acao, args := args[0], args[1:]

	switch acao {
	case "listar", "resumo":
		fs := newFlagSet("produtos " + acao)
		var page, size optionalInt
		fs.Var(&page, "page", "página (a partir de 0)")
		fs.Var(&size, "size", "itens por página")
		sort := fs.String("sort", "", "ordenação, e.g. codigo,desc")
		tipo := fs.String("tipo", "", "ELETRONICO | ELETRODOMESTICO | MOVEL")
		descricao := fs.String("descricao", "", "trecho da descrição (somente listar)")
		todos := fs.Bool("todos", false, "percorre todas as páginas (somente resumo)")
		if err := parse(fs, args); err != nil {
			return err
		}

		params := &domain.ListarProdutosParams{
			Page: page.v,
			Size: size.v,
			Sort: *sort,
			Tipo: domain.TipoProduto(strings.ToUpper(*tipo)),
		}
		if acao == "listar" {
			params.Descricao = *descricao
			produtos, err := a.produtos.Listar(ctx, params)
			if err != nil {
				return falha(err, "Erro ao carregar produtos.")
			}
			return a.imprimir(produtos)
		}
		if *todos {
			resumos, err := a.produtos.ListarTodosResumos(ctx, params)
			if err != nil {
				return falha(err, "Erro ao carregar resumo de produtos.")
			}
			return a.imprimir(resumos)
		}
		resumo, err := a.produtos.ListarResumo(ctx, params)
		if err != nil {
			return falha(err, "Erro ao carregar resumo de produtos.")
		}
		return a.imprimir(resumo)

	case "obter", "lucro":
		fs := newFlagSet("produtos " + acao)
		codigo := fs.Int64("codigo", 0, "código do produto")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *codigo <= 0 {
			return usagef("-codigo é obrigatório")
		}
		if acao == "lucro" {
			lucro, err := a.produtos.ConsultarLucro(ctx, *codigo)
			if err != nil {
				return falha(err, "Erro ao consultar lucro do produto.")
			}
			return a.imprimir(lucro)
		}
		produto, err := a.produtos.BuscarPorID(ctx, *codigo)
		if err != nil {
			return falha(err, "Erro ao carregar produto.")
		}
		return a.imprimir(produto)

	case "criar", "atualizar":
		fs := newFlagSet("produtos " + acao)
		codigo := fs.Int64("codigo", 0, "código do produto (somente atualizar)")
		descricao := fs.String("descricao", "", "descrição")
		tipo := fs.String("tipo", "", "ELETRONICO | ELETRODOMESTICO | MOVEL")
		valor := fs.String("valor", "0", "valor no fornecedor, e.g. 1234.56")
		estoque := fs.Int("estoque", 0, "quantidade em estoque")
		if err := parse(fs, args); err != nil {
			return err
		}
		custo, err := parseValor(*valor)
		if err != nil {
			return usagef("-valor: %v", err)
		}

		if acao == "criar" {
			produto, err := a.produtos.Criar(ctx, domain.ProdutoCreateRequest{
				Descricao:         *descricao,
				TipoProduto:       domain.TipoProduto(strings.ToUpper(*tipo)),
				ValorNoFornecedor: custo,
				Estoque:           *estoque,
			})
			if err != nil {
				return falha(err, "Erro ao salvar produto.")
			}
			return a.imprimir(produto)
		}

		if *codigo <= 0 {
			return usagef("-codigo é obrigatório")
		}
		produto, err := a.produtos.Atualizar(ctx, *codigo, domain.ProdutoUpdateRequest{
			Descricao:         *descricao,
			TipoProduto:       domain.TipoProduto(strings.ToUpper(*tipo)),
			ValorNoFornecedor: custo,
			Estoque:           *estoque,
		})
		if err != nil {
			return falha(err, "Erro ao salvar produto.")
		}
		return a.imprimir(produto)

	case "excluir":
		fs := newFlagSet("produtos excluir")
		codigo := fs.Int64("codigo", 0, "código do produto")
		forcar := fs.Bool("forcar", false, "exclui mesmo com movimentações")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *codigo <= 0 {
			return usagef("-codigo é obrigatório")
		}

		if *forcar {
			if err := a.produtos.ExcluirForcado(ctx, *codigo); err != nil {
				return falha(err, "Erro ao excluir produto.")
			}
		} else if err := a.produtos.Excluir(ctx, *codigo); err != nil {
			return &commandError{
				err:      err,
				fallback: "Erro ao excluir produto.",
				dica:     "use -forcar para excluir o produto e suas movimentações.",
			}
		}
		return a.imprimir(map[string]any{"codigo": *codigo, "excluido": true})
	}

	return usagef("ação de produtos desconhecida: %q", acao)
}

// --- movimentos ---

func (a *app) movimentosCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("ação de movimentos não informada")
	}
	acao, args := args[0], args[1:]

	switch acao {
	case "listar":
		fs := newFlagSet("movimentos listar")
		var page, size optionalInt
		fs.Var(&page, "page", "página (a partir de 0)")
		fs.Var(&size, "size", "itens por página")
		sort := fs.String("sort", "", "ordenação, e.g. codigoMovimentacao,desc")
		produto := fs.Int64("produto", 0, "filtra pelo código do produto")
		tipo := fs.String("tipo", "", "ENTRADA | SAIDA")
		if err := parse(fs, args); err != nil {
			return err
		}

		params := &domain.ListarMovimentosParams{
			Page:             page.v,
			Size:             size.v,
			Sort:             *sort,
			TipoMovimentacao: domain.TipoMovimentacao(strings.ToUpper(*tipo)),
		}
		if *produto > 0 {
			params.CodigoProduto = produto
		}
		movimentos, err := a.movimentos.Listar(ctx, params)
		if err != nil {
			return falha(err, "Erro ao carregar movimentações.")
		}
		return a.imprimir(movimentos)

	case "obter":
		fs := newFlagSet("movimentos obter")
		codigo := fs.Int64("codigo", 0, "código da movimentação")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *codigo <= 0 {
			return usagef("-codigo é obrigatório")
		}
		mov, err := a.movimentos.BuscarPorID(ctx, *codigo)
		if err != nil {
			return falha(err, "Erro ao carregar movimentação.")
		}
		return a.imprimir(mov)

	case "criar":
		fs := newFlagSet("movimentos criar")
		produto := fs.Int64("produto", 0, "código do produto")
		tipo := fs.String("tipo", "", "ENTRADA | SAIDA")
		quantidade := fs.Int("quantidade", 0, "quantidade movimentada")
		valorVenda := fs.String("valor-venda", "", "valor unitário da venda (saídas)")
		dataVenda := fs.String("data-venda", "", "data da venda, dd/mm/aaaa hh:mm:ss ou ISO 8601 (saídas; padrão agora)")
		if err := parse(fs, args); err != nil {
			return err
		}
		if *produto <= 0 {
			return usagef("-produto é obrigatório")
		}

		req := domain.MovimentoEstoqueCreateRequest{
			CodigoProduto:    *produto,
			TipoMovimentacao: domain.TipoMovimentacao(strings.ToUpper(*tipo)),
			QtdMovimentada:   *quantidade,
		}
		if *valorVenda != "" {
			v, err := parseValor(*valorVenda)
			if err != nil {
				return usagef("-valor-venda: %v", err)
			}
			req.ValorVenda = &v
		}
		if *dataVenda != "" {
			d, err := parseData(*dataVenda)
			if err != nil {
				return usagef("-data-venda: %v", err)
			}
			req.DataVenda = &d
		} else if req.TipoMovimentacao == domain.MovimentacaoSaida {
			agora := domain.NovaDataHora(time.Now())
			req.DataVenda = &agora
		}

		mov, err := a.movimentos.Criar(ctx, req)
		if err != nil {
			return falha(err, "Erro ao registrar movimentação.")
		}
		return a.imprimir(mov)
	}

	return usagef("ação de movimentos desconhecida: %q", acao)
}

// --- relatorio ---

func (a *app) relatorioCmd(ctx context.Context, args []string) error {
	fs := newFlagSet("relatorio")
	formato := fs.String("formato", "xlsx", "xlsx | pdf | csv")
	saida := fs.String("saida", "", "arquivo de saída")
	tipo := fs.String("tipo", "", "filtra por tipo de produto")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *saida == "" {
		return usagef("-saida é obrigatório")
	}

	var exportar func(report.Relatorio) ([]byte, error)
	switch strings.ToLower(*formato) {
	case "xlsx":
		exportar = report.ExportarXLSX
	case "pdf":
		exportar = report.ExportarPDF
	case "csv":
		exportar = report.ExportarCSV
	default:
		return usagef("formato desconhecido: %q", *formato)
	}

	rel, err := report.Gerar(ctx, a.produtos, report.Filtro{Tipo: domain.TipoProduto(strings.ToUpper(*tipo))})
	if err != nil {
		return falha(err, "Erro ao gerar relatório.")
	}
	data, err := exportar(rel)
	if err != nil {
		return fmt.Errorf("exportando relatório: %w", err)
	}
	if err := os.WriteFile(*saida, data, 0o644); err != nil {
		return fmt.Errorf("gravando %s: %w", *saida, err)
	}

	a.log.Info("Relatório gerado.", map[string]interface{}{"arquivo": *saida, "produtos": len(rel.Linhas)})
	return a.imprimir(map[string]any{
		"arquivo":      *saida,
		"produtos":     len(rel.Linhas),
		"totalEstoque": rel.TotalEstoque,
		"totalSaidas":  rel.TotalSaidas,
		"lucroTotal":   rel.LucroTotal,
	})
}

// parseValor aceita ponto ou vírgula como separador decimal.
func parseValor(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
}

func parseData(s string) (domain.DataHora, error) {
	if t, err := time.ParseInLocation(report.LayoutData, s, time.Local); err == nil {
		return domain.DataHora{Time: t}, nil
	}
	return domain.ParseDataHora(s)
}
