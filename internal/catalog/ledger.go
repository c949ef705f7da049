package catalog

// ledger.go holds the pure copy-pool transitions of the lending ledger.
// The store methods run these inside transactions; keeping them as plain
// functions makes the state machine testable without a database.

// borrowTransition consumes one available copy.
func borrowTransition(available int) (newAvailable int, status Status, err error) {
	if available <= 0 {
		return available, statusFor(available), ErrNoCopiesAvailable
	}
	newAvailable = available - 1
	return newAvailable, statusFor(newAvailable), nil
}

// returnTransition releases one copy back to the pool. The available <
// total guard protects against over-returning when the counters have
// drifted.
func returnTransition(available, total int) (newAvailable int, status Status, err error) {
	if available >= total {
		return available, statusFor(available), ErrAllCopiesAvailable
	}
	newAvailable = available + 1
	return newAvailable, statusFor(newAvailable), nil
}

// resizeTransition changes the total copy count while preserving the
// number of outstanding loans. The new total may not drop below the
// copies currently out.
func resizeTransition(total, available, newTotal int) (newAvailable int, status Status, err error) {
	outstanding := total - available
	if newTotal < outstanding {
		return available, statusFor(available), ErrBelowOutstandingLoans
	}
	newAvailable = newTotal - outstanding
	return newAvailable, statusFor(newAvailable), nil
}
