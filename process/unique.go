package process

import (
	"github.com/arnodel/jsel/eval"
	"github.com/arnodel/jsel/value"
)

// Unique deduplicates records by identity: the built row when titles are
// non-empty, or the raw input otherwise. First occurrence wins.
type Unique struct {
	Next Stage

	titlesSoFar []string
	seen        map[string]struct{}
}

func (u *Unique) Start(titlesSoFar []string) ([]string, error) {
	u.titlesSoFar = titlesSoFar
	u.seen = map[string]struct{}{}
	return u.Next.Start(titlesSoFar)
}

func (u *Unique) Process(ctx *eval.Context) (Signal, error) {
	identity := ctx.Build(u.titlesSoFar)
	key := value.CanonicalString(identity)
	if _, dup := u.seen[key]; dup {
		return Continue, nil
	}
	u.seen[key] = struct{}{}
	return u.Next.Process(ctx)
}

func (u *Unique) Complete() error {
	return u.Next.Complete()
}
