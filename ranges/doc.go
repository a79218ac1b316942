/*Package ranges implements the core data model for genomic interval
  collections: an immutable interval value type, a columnar collection of
  intervals with typed metadata columns, a sequence-length dictionary, and
  an explicit group-by wrapper consumed by the algebra, join, coverage and
  aggregation packages.
  Coordinates are 1-based closed internally; every position is assumed to
  fit in a PosType, which is currently defined as int32 since that's what
  BAM files are limited to.
*/
package ranges
