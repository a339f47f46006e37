package middleware

import "context"

// Transaction takes a checkpoint before the operation runs and restores it
// when the operation returns an error or panics. A panic is re-raised after
// the rollback.
func Transaction(checkpoint func() func()) Interceptor {
	return func(name string, next Operation) Operation {
		return func(ctx context.Context) (err error) {
			rollback := checkpoint()
			committed := false
			defer func() {
				if !committed {
					rollback()
				}
			}()

			if err = next(ctx); err != nil {
				return err
			}
			committed = true
			return nil
		}
	}
}
