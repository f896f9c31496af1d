package model

// AssetID is the stable market-data identifier of an asset (e.g. "bitcoin").
type AssetID string

func (id AssetID) String() string {
	return string(id)
}
