package repository

// storageKey builds the partition key for (provider, external id) aggregates.
func storageKey(provider, externalID string) string {
	return provider + "#" + externalID
}
