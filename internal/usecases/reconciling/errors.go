package reconciling

import "fmt"

// CriticalSourceError indica que uma fonte crítica esgotou as tentativas.
// A execução inteira é abortada sem nenhuma escrita de fatos.
type CriticalSourceError struct {
	Source string
	Err    error
}

func (e *CriticalSourceError) Error() string {
	return fmt.Sprintf("fonte crítica %s falhou: %v", e.Source, e.Err)
}

func (e *CriticalSourceError) Unwrap() error {
	return e.Err
}

// WriteError indica falha na escrita idempotente dos fatos. Aborta a
// execução: uma escrita parcial sem entrada correspondente no ledger
// corromperia a auditabilidade.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("falha ao gravar fatos reconciliados: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
