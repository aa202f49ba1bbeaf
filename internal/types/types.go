// internal/types/types.go
package types

// EntityID — дескриптор сущности в хранилище ECS. Ноль означает "нет сущности".
type EntityID uint32

// None is the zero handle.
const None EntityID = 0
