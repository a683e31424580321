package process

import "github.com/arnodel/jsel/eval"

// Source yields successive record contexts. It returns ok=false with a nil
// error once exhausted.
type Source func() (ctx *eval.Context, ok bool, err error)

// Run drives entry's lifecycle against records pulled from next: Start
// once, Process per record until exhaustion or a Break signal, then
// Complete.
func Run(entry Stage, next Source) error {
	if _, err := entry.Start(nil); err != nil {
		return err
	}
	for {
		ctx, ok, err := next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		signal, err := entry.Process(ctx)
		if err != nil {
			return err
		}
		if signal == Break {
			break
		}
	}
	return entry.Complete()
}
