package process

import "github.com/arnodel/jsel/eval"

// Limit skips the first Skip records, then forwards up to Take (if Take
// is non-negative), signalling Break once that quota is reached.
type Limit struct {
	Skip int
	Take int // negative means unbounded
	Next Stage

	seen      int
	forwarded int
}

func (l *Limit) Start(titlesSoFar []string) ([]string, error) {
	return l.Next.Start(titlesSoFar)
}

func (l *Limit) Process(ctx *eval.Context) (Signal, error) {
	if l.seen < l.Skip {
		l.seen++
		return Continue, nil
	}
	l.seen++
	if l.Take >= 0 && l.forwarded >= l.Take {
		return Break, nil
	}
	signal, err := l.Next.Process(ctx)
	if err != nil {
		return Continue, err
	}
	l.forwarded++
	if l.Take >= 0 && l.forwarded >= l.Take {
		return Break, nil
	}
	return signal, nil
}

func (l *Limit) Complete() error {
	return l.Next.Complete()
}
