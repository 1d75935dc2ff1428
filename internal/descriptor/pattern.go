package descriptor

// bitPattern is the fixed descriptor sampling pattern: 128 comparison
// tuples of two (dx, dy) offsets each, flattened. The offsets stay
// within +/-13 pixels of the keypoint, which the pyramid border
// covers even after rotation.
var bitPattern = [512]int8{
	-9, -13, 12, 2,
	11, -13, -10, -3,
	-10, -9, 6, 10,
	10, -4, -7, 9,
	-8, -8, 5, -8,
	4, -8, -5, -3,
	9, -11, -6, -9,
	-9, -3, 5, 4,
	6, -2, -13, 1,
	-8, 1, 4, 5,
	-12, -2, 9, -1,
	5, -6, -9, 1,
	4, 2, -3, 12,
	-5, -12, 4, -7,
	-3, 11, 2, 12,
	12, 1, -7, 2,
	-6, -2, 7, -1,
	-3, -5, 2, -5,
	6, -8, -8, -3,
	-3, 1, 2, 2,
	5, -13, -4, -11,
	2, -9, -4, 0,
	-12, -8, 6, -7,
	6, 10, -5, 11,
	-6, -12, 4, -10,
	7, -5, -12, -3,
	-11, -2, 13, 0,
	3, -1, -3, 4,
	-3, -3, 3, -3,
	4, -5, -5, -3,
	-4, 2, 3, 3,
	-1, -6, -3, 0,
	-6, 2, 4, 3,
	3, 1, -3, 2,
	-3, -3, 3, 1,
	-3, 2, 1, 7,
	4, -3, -7, 1,
	-4, -13, 2, -13,
	4, -8, -4, -6,
	-2, -3, -3, 2,
	-12, 2, 4, 4,
	2, -5, -3, -4,
	-3, -9, 2, -8,
	-6, -3, -13, 0,
	3, -11, -3, -9,
	-6, -4, 8, -3,
	-3, -4, 2, -4,
	3, -6, -3, -5,
	13, -11, 6, -10,
	-4, -4, 4, -4,
	4, -6, -5, -4,
	3, -13, -3, -12,
	-5, -4, 4, -4,
	6, -2, -6, -1,
	-3, -12, 2, -12,
	-3, 3, 2, 3,
	1, -3, -2, 3,
	2, -3, -3, -2,
	-4, -9, 2, -9,
	2, -13, -3, -9,
	-3, -2, 3, 0,
	3, 2, -2, 6,
	-3, 5, 3, 5,
	2, -3, -4, 0,
	-11, 1, -4, 4,
	4, 5, -5, 6,
	-3, 0, 2, 1,
	3, 0, -3, 1,
	-7, 6, 7, 10,
	-3, 1, 3, 1,
	-5, -4, -11, -3,
	5, 2, -4, 3,
	2, -4, -4, -3,
	-8, 1, 4, 1,
	5, 4, -10, 5,
	-3, -1, 0, 4,
	-3, -3, 5, -2,
	-13, -13, -3, -13,
	6, -13, -10, -12,
	-5, -11, 6, -11,
	5, -5, -4, -4,
	-7, 10, 13, 12,
	-1, -8, 1, -3,
	-13, 0, -5, 0,
	4, 5, -12, 6,
	-8, 5, 3, 5,
	3, -2, -7, -1,
	-7, -1, 4, -1,
	2, -12, -4, -11,
	-7, -6, 3, -6,
	4, 10, -8, 13,
	3, -3, -9, -2,
	-7, 2, 2, 4,
	-2, -12, 4, -12,
	3, -7, -2, -4,
	-3, -4, 2, -2,
	4, -9, -7, -8,
	-7, -5, 3, -5,
	2, -5, -8, -2,
	-9, 3, -4, 3,
	7, -11, 12, -11,
	13, 0, 3, 2,
	2, -5, 8, -2,
	6, 2, -3, 3,
	-3, -3, -13, -2,
	-4, 4, 1, 4,
	0, -3, -5, -2,
	8, 1, 3, 2,
	-2, -4, 8, -3,
	-12, 1, -3, 3,
	4, 0, 13, 0,
	-12, -3, -4, -3,
	-2, -3, -9, -1,
	12, -11, 0, -10,
	-5, 2, 0, 3,
	2, -4, 9, -3,
	3, 5, -8, 6,
	-13, -4, 3, -4,
	-3, -2, -13, -1,
	11, -2, -3, 3,
	-4, 4, 5, 4,
	13, -4, -4, -3,
	-3, -4, 12, -4,
	7, 2, 2, 3,
	2, -3, 11, 0,
	9, -7, -3, -6,
	-4, -11, 10, -11,
	12, -1, 4, 0,
}
