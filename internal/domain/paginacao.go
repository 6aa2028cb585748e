package domain

// SortInfo descreve o estado de ordenação de uma página.
type SortInfo struct {
	Empty    bool `json:"empty"`
	Sorted   bool `json:"sorted"`
	Unsorted bool `json:"unsorted"`
}

// PageableInfo descreve a requisição de paginação que gerou a página.
type PageableInfo struct {
	Offset     int64    `json:"offset"`
	PageNumber int      `json:"pageNumber"`
	PageSize   int      `json:"pageSize"`
	Paged      bool     `json:"paged"`
	Unpaged    bool     `json:"unpaged"`
	Sort       SortInfo `json:"sort"`
}

// Page é o envelope paginado devolvido por todos os endpoints de listagem.
type Page[T any] struct {
	Content          []T          `json:"content"`
	Empty            bool         `json:"empty"`
	First            bool         `json:"first"`
	Last             bool         `json:"last"`
	Number           int          `json:"number"`
	NumberOfElements int          `json:"numberOfElements"`
	Pageable         PageableInfo `json:"pageable"`
	Size             int          `json:"size"`
	Sort             SortInfo     `json:"sort"`
	TotalElements    int64        `json:"totalElements"`
	TotalPages       int          `json:"totalPages"`
}

// NewPage monta um envelope consistente para o conteúdo de uma página.
// total é a contagem geral de elementos; sorted indica se houve ordenação.
func NewPage[T any](content []T, number, size int, total int64, sorted bool) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	sort := SortInfo{Empty: !sorted, Sorted: sorted, Unsorted: !sorted}

	return Page[T]{
		Content:          content,
		Empty:            len(content) == 0,
		First:            number == 0,
		Last:             totalPages == 0 || number >= totalPages-1,
		Number:           number,
		NumberOfElements: len(content),
		Pageable: PageableInfo{
			Offset:     int64(number) * int64(size),
			PageNumber: number,
			PageSize:   size,
			Paged:      true,
			Sort:       sort,
		},
		Size:          size,
		Sort:          sort,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// Consistent verifica as invariantes do envelope. Páginas além da última
// (number > totalPages-1) também são marcadas como last pelo backend.
func (p Page[T]) Consistent() bool {
	if p.NumberOfElements != len(p.Content) {
		return false
	}
	if p.TotalPages > 0 && p.Last != (p.Number >= p.TotalPages-1) {
		return false
	}
	if p.TotalElements == 0 && (len(p.Content) != 0 || !p.Last) {
		return false
	}
	return true
}
