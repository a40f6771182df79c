package highlight

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// identifiers bound to the only instance of their type
var singletonIdentifiers = set("nothing", "missing")

// type names from Base and Core
var baseTypeIdentifiers = set(
	"AbstractArray", "AbstractChannel", "AbstractChar", "AbstractDict",
	"AbstractDisplay", "AbstractFloat", "AbstractIrrational", "AbstractMatrix",
	"AbstractPattern", "AbstractRange", "AbstractSet", "AbstractSlices",
	"AbstractString", "AbstractUnitRange", "AbstractVecOrMat", "AbstractVector",
	"Any", "ArgumentError", "Array", "AssertionError", "Atomic", "BigFloat",
	"BigInt", "BitArray", "BitMatrix", "BitSet", "BitVector", "Bool",
	"BoundsError", "Cchar", "Cdouble", "Cfloat", "Channel", "Char", "Cint",
	"Cintmax_t", "Clong", "Clonglong", "Cmd", "Colon", "Complex", "ComplexF16",
	"ComplexF32", "ComplexF64", "ComposedFunction", "CompositeException",
	"Condition", "Cptrdiff_t", "Cshort", "Csize_t", "Cssize_t", "Cstring",
	"Cuchar", "Cuint", "Cuintmax_t", "Culong", "Culonglong", "Cushort", "Cvoid",
	"Cwchar_t", "Cwstring", "DataType", "DenseArray", "DenseMatrix",
	"DenseVecOrMat", "DenseVector", "Dict", "DimensionMismatch", "Dims",
	"DivideError", "DomainError", "EOFError", "Enum", "ErrorException",
	"Exception", "ExponentialBackOff", "Expr", "Float16", "Float32", "Float64",
	"Function", "GlobalRef", "HTML", "IO", "IOBuffer", "IOContext", "IOStream",
	"IdDict", "IndexCartesian", "IndexLinear", "IndexStyle", "InexactError",
	"InitError", "Int", "Int128", "Int16", "Int32", "Int64", "Int8", "Integer",
	"InterruptException", "InvalidStateException", "Irrational",
	"KeyError", "LinRange", "LineNumberNode", "LinearIndices", "LoadError",
	"MIME", "Matrix", "Memory", "MemoryRef", "Method", "MethodError", "Missing",
	"MissingException", "Module", "NTuple", "NamedTuple", "Nothing", "Number",
	"OrdinalRange", "OutOfMemoryError", "OverflowError", "Pair",
	"PartialQuickSort", "PermutedDimsArray", "Pipe", "ProcessFailedException",
	"Ptr", "QuoteNode", "Rational", "RawFD", "ReadOnlyMemoryError", "Real",
	"ReentrantLock", "Ref", "Regex", "RegexMatch", "RoundingMode",
	"SegmentationFault", "Set", "Signed", "Some", "StackOverflowError",
	"StepRange", "StepRangeLen", "StridedArray", "StridedMatrix",
	"StridedVecOrMat", "StridedVector", "String", "StringIndexError", "SubArray",
	"SubString", "SubstitutionString", "Symbol", "SystemError", "Task",
	"TaskFailedException", "Text", "TextDisplay", "Timer", "Tuple", "Type",
	"TypeError", "TypeVar", "UInt", "UInt128", "UInt16", "UInt32", "UInt64",
	"UInt8", "UndefInitializer", "UndefKeywordError", "UndefRefError",
	"UndefVarError", "Union", "UnionAll", "UnitRange", "Unsigned", "Val",
	"VecElement", "VecOrMat", "Vector", "VersionNumber", "WeakKeyDict",
	"WeakRef",
)

// functions provided by Core as builtins
var builtinFunctions = set(
	"applicable", "isa", "typeof", "sizeof", "isdefined", "typeassert",
	"throw", "tuple", "getfield", "setfield!", "swapfield!", "modifyfield!",
	"replacefield!", "setfieldonce!", "nfields", "fieldtype", "getglobal",
	"setglobal!", "swapglobal!", "modifyglobal!", "replaceglobal!",
	"setglobalonce!", "isdefinedglobal", "invoke", "invokelatest", "ifelse",
	"svec", "apply_type", "donotdelete", "compilerbarrier", "finalizer",
	"current_scope", "memorynew", "memoryrefnew", "memoryrefoffset",
	"memoryrefget", "memoryrefset!", "memoryref_isassigned",
	"memoryrefswap!", "memoryrefmodify!", "memoryrefreplace!",
	"memoryrefsetonce!", "get_binding_type", "_apply_iterate", "_apply_pure",
	"_call_in_world", "_call_in_world_total", "_call_latest",
	"_compute_sparams", "_equiv_typedef", "_expr", "_primitivetype",
	"_setsuper!", "_structtype", "_abstracttype", "_svec_ref", "_typebody!",
	"_typevar",
)

func IsSingleton(name string) bool {
	_, ok := singletonIdentifiers[name]
	return ok
}

func IsBaseType(name string) bool {
	_, ok := baseTypeIdentifiers[name]
	return ok
}

func IsBuiltin(name string) bool {
	_, ok := builtinFunctions[name]
	return ok
}
