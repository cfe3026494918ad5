// Package orchestration evaluates batches of expressions concurrently and
// turns their outcomes into an exit code. It decouples evaluation from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
