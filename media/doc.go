/*
Package media 把上游返回的图像字节保存为本地可寻址的句柄。

句柄形如 "media://<uuid>"，调用方用完后应调用 Release 释放。
提供内存实现 MemoryStore 与落盘实现 FileStore。
*/
package media
