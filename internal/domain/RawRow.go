package domain

// RawRow representa uma linha bruta retornada por um endpoint de relatório.
// O esquema varia por fonte; nenhuma chave é garantida além das listas de
// candidatos documentadas em reconciling/fields.go.
type RawRow map[string]any
