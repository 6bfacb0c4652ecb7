// Package transaction records the compensating actions of an install so a
// failure partway through can put the project back exactly as it was.
//
// A Transaction is opened before the first mutation, told about every file
// it is about to overwrite or create and every directory it creates, and is
// finally committed. Anything not committed is undone by Rollback:
//
//	tx, err := transaction.Begin(fsys, manifestPath, log)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback()
//	...
//	return tx.Commit()
package transaction
