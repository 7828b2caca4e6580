package detector

// Detect exposes the pure detection rule to tests.
var Detect = detect
