package longtail

// Bucket groups items by intent, preserving their order. Every intent key is
// present; items with an unrecognised intent land in IntentOther.
func Bucket(items []Item) Buckets {
	return BucketBy(items, func(item Item) Intent { return item.Intent })
}

// BucketBy is Bucket for any value that carries an intent.
func BucketBy[T any](values []T, intentOf func(T) Intent) map[Intent][]T {
	buckets := make(map[Intent][]T, len(Intents))
	for _, intent := range Intents {
		buckets[intent] = []T{}
	}

	for _, v := range values {
		intent := intentOf(v)
		if _, ok := buckets[intent]; !ok {
			intent = IntentOther
		}
		buckets[intent] = append(buckets[intent], v)
	}
	return buckets
}

// Total returns the number of items across all buckets.
func (b Buckets) Total() int {
	total := 0
	for _, items := range b {
		total += len(items)
	}
	return total
}
