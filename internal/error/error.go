package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrPlacementFailed = "fleet placement failed"
)

var (
	// Returned by Board.PlaceShip when a ship leaves the grid or touches
	// a cell that is already reserved by another ship or its contour.
	ErrShipOutOfBounds = errors.New("ship is out of bounds or overlaps a reserved cell")

	// Returned by Placer.TryBoard once the shared attempt budget is spent.
	ErrPlacementExhausted = errors.New(ConstErrPlacementFailed + ": attempt budget exhausted")

	ErrGameFinished = errors.New("game is already finished")
	ErrGameNotFound = errors.New("game does not exist")

	ErrSessionNotFound = errors.New("session does not exist")

	ErrCoordinateCount     = errors.New("expected 2 coordinates")
	ErrCoordinateNotNumber = errors.New("coordinates must be numbers")
	ErrOutOfGrid           = errors.New("coordinates are out of game grid bound")

	ErrInvalidStage       = errors.New("stage must be either dev or prod")
	ErrInvalidStorageType = errors.New("storage type must be one of none, postgres, sqlite")
)

func ErrShipPlacement(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrShipOutOfBounds, x, y)
}

func ErrPlacementAttempts(attempts int) error {
	return fmt.Errorf("%w after %d attempts", ErrPlacementExhausted, attempts)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameNotFound, gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game with this uuid is nil, uuid: %s", gameUuid)
}

func ErrGameAlreadyFinished(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameFinished, gameUuid)
}

func ErrSessionNotExists(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotFound, sessionId)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrOutOfGrid, x, y)
}

func ErrStage(stage string) error {
	return fmt.Errorf("%w, got: %q", ErrInvalidStage, stage)
}

func ErrStorageType(storageType string) error {
	return fmt.Errorf("%w, got: %q", ErrInvalidStorageType, storageType)
}
