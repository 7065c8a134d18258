package testutil

import "testing"

func TestChunksEndsShort(t *testing.T) {
	chunks := Chunks(NoiseBlock(1, 1, 2, 8), 4)
	if len(chunks) != 3 || chunks[2].Frames() != 0 {
		t.Fatalf("8 frames by 4: %d chunks, want 3 ending empty", len(chunks))
	}

	chunks = Chunks(NoiseBlock(1, 1, 2, 9), 4)
	if len(chunks) != 3 || chunks[2].Frames() != 1 {
		t.Fatalf("9 frames by 4: %d chunks, want 3 ending with 1 frame", len(chunks))
	}
}

func TestConcatRestoresChunks(t *testing.T) {
	b := NoiseBlock(3, 0.5, 2, 10)
	RequireBlockNearlyEqual(t, Concat(2, Chunks(b, 3)...), b, 0)
}
