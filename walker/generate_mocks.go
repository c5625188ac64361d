//go:generate mockgen -source=walker.go -destination=mock_walker_test.go -package=walker

package walker
